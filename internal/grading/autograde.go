package grading

import (
	"fmt"
	"math"

	"github.com/examsys/exam-core/internal/answer"
)

// AutoGradeConfig tunes the overlay similarity comparison. Marker
// matching uses a real distance tolerance; other kinds match by
// presence only, which is a known approximation of geometric overlap.
type AutoGradeConfig struct {
	// PointToleranceMeters is the maximum distance at which a submitted
	// marker counts as matching a reference marker.
	PointToleranceMeters float64

	// CompletenessWeight and AccuracyWeight split the question weight
	// between the two sub-scores. They should sum to 1.
	CompletenessWeight float64
	AccuracyWeight     float64
}

// DefaultAutoGradeConfig mirrors the tolerances used in production.
func DefaultAutoGradeConfig() AutoGradeConfig {
	return AutoGradeConfig{
		PointToleranceMeters: 50,
		CompletenessWeight:   0.6,
		AccuracyWeight:       0.4,
	}
}

// MatchReport records how the submitted shape set lined up against the
// reference set.
type MatchReport struct {
	Matched    int `json:"matched"`
	Missing    int `json:"missing"`
	Extraneous int `json:"extraneous"`
}

// AutoGrade compares the learner's shapes against the question's
// reference shapes and produces a rubric breakdown worth at most
// maxScore. Completeness measures how much of the reference set was
// found; accuracy penalizes extraneous shapes.
func AutoGrade(submitted, reference []answer.Shape, maxScore float64, cfg AutoGradeConfig) (Breakdown, MatchReport) {
	report := matchShapes(submitted, reference, cfg.PointToleranceMeters)

	completeness := 1.0
	if len(reference) > 0 {
		completeness = float64(report.Matched) / float64(len(reference))
	}

	accuracy := 1.0
	if report.Matched+report.Extraneous > 0 {
		accuracy = float64(report.Matched) / float64(report.Matched+report.Extraneous)
	} else if len(reference) > 0 {
		// Nothing submitted against a non-empty reference.
		accuracy = 0
	}

	breakdown := Breakdown{
		Scores: map[string]float64{
			"completeness": round2(completeness * maxScore * cfg.CompletenessWeight),
			"accuracy":     round2(accuracy * maxScore * cfg.AccuracyWeight),
		},
		Comments: map[string]string{
			"auto": fmt.Sprintf("matched=%d missing=%d extraneous=%d", report.Matched, report.Missing, report.Extraneous),
		},
	}
	return breakdown, report
}

// matchShapes pairs shapes by kind. Markers pair greedily by nearest
// distance under the tolerance; every other kind pairs by count.
func matchShapes(submitted, reference []answer.Shape, toleranceMeters float64) MatchReport {
	var report MatchReport

	subByKind := groupByKind(submitted)
	refByKind := groupByKind(reference)

	for kind, refs := range refByKind {
		subs := subByKind[kind]

		var matched int
		if kind == answer.ShapeMarker {
			matched = matchMarkers(subs, refs, toleranceMeters)
		} else {
			matched = min(len(subs), len(refs))
		}

		report.Matched += matched
		report.Missing += len(refs) - matched
		report.Extraneous += len(subs) - matched
	}

	// Submitted kinds absent from the reference are all extraneous.
	for kind, subs := range subByKind {
		if _, ok := refByKind[kind]; !ok {
			report.Extraneous += len(subs)
		}
	}

	return report
}

func matchMarkers(submitted, reference []answer.Shape, toleranceMeters float64) int {
	used := make([]bool, len(submitted))
	matched := 0

	for _, ref := range reference {
		if len(ref.Coordinates) == 0 {
			continue
		}
		best := -1
		bestDist := toleranceMeters

		for i, sub := range submitted {
			if used[i] || len(sub.Coordinates) == 0 {
				continue
			}
			d := haversineMeters(ref.Coordinates[0], sub.Coordinates[0])
			if d <= bestDist {
				best = i
				bestDist = d
			}
		}

		if best >= 0 {
			used[best] = true
			matched++
		}
	}

	return matched
}

func groupByKind(shapes []answer.Shape) map[answer.ShapeKind][]answer.Shape {
	out := make(map[answer.ShapeKind][]answer.Shape)
	for _, s := range shapes {
		out[s.Kind] = append(out[s.Kind], s)
	}
	return out
}

const earthRadiusMeters = 6371000

func haversineMeters(a, b answer.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
