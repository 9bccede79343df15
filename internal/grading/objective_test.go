package grading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examsys/exam-core/internal/question"
)

func TestGradeSingleChoice(t *testing.T) {
	res, err := Grade(question.TypeSingleChoice, "B", "b", 40, false)
	assert.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 40.0, res.Score)

	res, err = Grade(question.TypeSingleChoice, "B", "A", 40, false)
	assert.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0.0, res.Score)
}

func TestGradeTrueFalse(t *testing.T) {
	res, err := Grade(question.TypeTrueFalse, "true", " TRUE ", 5, false)
	assert.NoError(t, err)
	assert.True(t, res.IsCorrect)
}

func TestGradeMultipleChoiceAllOrNothing(t *testing.T) {
	cases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"ExactMatch", "A,C", true},
		{"ReorderedMatch", "C, a", true},
		{"Subset", "A", false},
		{"Superset", "A,C,D", false},
		{"OtherSubset", "C", false},
		{"Empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Grade(question.TypeMultipleChoice, "A,C", tc.submitted, 10, false)
			assert.NoError(t, err)
			assert.Equal(t, tc.correct, res.IsCorrect)
			if tc.correct {
				assert.Equal(t, 10.0, res.Score)
			} else {
				assert.Equal(t, 0.0, res.Score)
			}
		})
	}
}

func TestGradeFillInBlank(t *testing.T) {
	t.Run("AnyAlternativeMatches", func(t *testing.T) {
		res, err := Grade(question.TypeFillInBlank, "carbon dioxide|CO2", "co2", 8, false)
		assert.NoError(t, err)
		assert.True(t, res.IsCorrect)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		res, err := Grade(question.TypeFillInBlank, "CO2", "co2", 8, true)
		assert.NoError(t, err)
		assert.False(t, res.IsCorrect)

		res, err = Grade(question.TypeFillInBlank, "CO2", "CO2", 8, true)
		assert.NoError(t, err)
		assert.True(t, res.IsCorrect)
	})
}

func TestGradeSkipsSubjectiveTypes(t *testing.T) {
	for _, qt := range []question.QuestionType{question.TypeEssay, question.TypeMapDrawing} {
		_, err := Grade(qt, "anything", "anything", 10, false)
		assert.True(t, errors.Is(err, ErrNotObjective), "type %s should not be objectively gradable", qt)
	}
}
