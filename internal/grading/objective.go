package grading

import (
	"errors"
	"sort"
	"strings"

	"github.com/examsys/exam-core/internal/question"
)

// ErrNotObjective marks question types this grader must skip; they stay
// ungraded until a rubric grade resolves them.
var ErrNotObjective = errors.New("question type is not objectively gradable")

type Result struct {
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`
}

// Grade compares a submitted answer against the canonical one. It is a
// pure function; weight is the full score awarded on a correct answer.
//
// Canonical encodings: multiple-choice options are comma-separated and
// compared as sets with no partial credit; fill-in accepts alternatives
// separated by '|', first match wins.
func Grade(qt question.QuestionType, canonical, submitted string, weight float64, caseSensitive bool) (Result, error) {
	if !qt.IsObjective() {
		return Result{}, ErrNotObjective
	}

	submitted = strings.TrimSpace(submitted)
	canonical = strings.TrimSpace(canonical)
	if submitted == "" {
		return Result{}, nil
	}

	var correct bool
	switch qt {
	case question.TypeSingleChoice, question.TypeTrueFalse:
		correct = strings.EqualFold(submitted, canonical)

	case question.TypeMultipleChoice:
		correct = optionSetsEqual(submitted, canonical)

	case question.TypeFillInBlank:
		correct = matchesAnyAlternative(submitted, canonical, caseSensitive)
	}

	if !correct {
		return Result{}, nil
	}
	return Result{IsCorrect: true, Score: weight}, nil
}

// optionSetsEqual compares comma-separated option sets exactly; any
// missing or extra option scores zero.
func optionSetsEqual(submitted, canonical string) bool {
	sub := normalizeOptions(submitted)
	can := normalizeOptions(canonical)
	if len(sub) != len(can) {
		return false
	}
	for i := range sub {
		if sub[i] != can[i] {
			return false
		}
	}
	return true
}

func normalizeOptions(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func matchesAnyAlternative(submitted, canonical string, caseSensitive bool) bool {
	for _, alt := range strings.Split(canonical, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		if caseSensitive {
			if submitted == alt {
				return true
			}
		} else if strings.EqualFold(submitted, alt) {
			return true
		}
	}
	return false
}
