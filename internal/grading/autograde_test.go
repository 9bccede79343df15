package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examsys/exam-core/internal/answer"
)

func marker(lng, lat float64) answer.Shape {
	return answer.Shape{Kind: answer.ShapeMarker, Coordinates: []answer.Coordinate{{Lng: lng, Lat: lat}}}
}

func polyline(points ...answer.Coordinate) answer.Shape {
	return answer.Shape{Kind: answer.ShapePolyline, Coordinates: points}
}

func TestAutoGradePerfectMatch(t *testing.T) {
	ref := []answer.Shape{marker(116.40, 39.90), marker(116.41, 39.91)}
	sub := []answer.Shape{marker(116.40, 39.90), marker(116.41, 39.91)}

	breakdown, report := AutoGrade(sub, ref, 60, DefaultAutoGradeConfig())

	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 0, report.Missing)
	assert.Equal(t, 0, report.Extraneous)
	assert.InDelta(t, 60.0, breakdown.Total(), 0.01)
}

func TestAutoGradeMarkerTolerance(t *testing.T) {
	ref := []answer.Shape{marker(116.4000, 39.9000)}

	t.Run("WithinTolerance", func(t *testing.T) {
		// Roughly 20m east of the reference point.
		sub := []answer.Shape{marker(116.40023, 39.9000)}
		_, report := AutoGrade(sub, ref, 10, DefaultAutoGradeConfig())
		assert.Equal(t, 1, report.Matched)
	})

	t.Run("OutsideTolerance", func(t *testing.T) {
		// Roughly 1km east.
		sub := []answer.Shape{marker(116.4117, 39.9000)}
		_, report := AutoGrade(sub, ref, 10, DefaultAutoGradeConfig())
		assert.Equal(t, 0, report.Matched)
		assert.Equal(t, 1, report.Missing)
		assert.Equal(t, 1, report.Extraneous)
	})

	t.Run("ConfigurableTolerance", func(t *testing.T) {
		cfg := DefaultAutoGradeConfig()
		cfg.PointToleranceMeters = 2000
		sub := []answer.Shape{marker(116.4117, 39.9000)}
		_, report := AutoGrade(sub, ref, 10, cfg)
		assert.Equal(t, 1, report.Matched)
	})
}

func TestAutoGradeLinesMatchByPresence(t *testing.T) {
	ref := []answer.Shape{polyline(answer.Coordinate{Lng: 1, Lat: 1}, answer.Coordinate{Lng: 2, Lat: 2})}
	// Far away, but lines are matched by kind presence only.
	sub := []answer.Shape{polyline(answer.Coordinate{Lng: 50, Lat: 50}, answer.Coordinate{Lng: 51, Lat: 51})}

	_, report := AutoGrade(sub, ref, 10, DefaultAutoGradeConfig())
	assert.Equal(t, 1, report.Matched)
}

func TestAutoGradeMissingAndExtraneous(t *testing.T) {
	ref := []answer.Shape{marker(116.40, 39.90), marker(116.50, 39.95)}
	sub := []answer.Shape{
		marker(116.40, 39.90),
		{Kind: answer.ShapeCircle, Coordinates: []answer.Coordinate{{Lng: 116.42, Lat: 39.92}}, Radius: 100},
	}

	breakdown, report := AutoGrade(sub, ref, 60, DefaultAutoGradeConfig())

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 1, report.Extraneous)

	// Half the reference found: completeness 0.5, accuracy 0.5.
	assert.InDelta(t, 0.5*60*0.6, breakdown.Scores["completeness"], 0.01)
	assert.InDelta(t, 0.5*60*0.4, breakdown.Scores["accuracy"], 0.01)
}

func TestAutoGradeEmptySubmission(t *testing.T) {
	ref := []answer.Shape{marker(116.40, 39.90)}

	breakdown, report := AutoGrade(nil, ref, 30, DefaultAutoGradeConfig())
	assert.Equal(t, 0, report.Matched)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 0.0, breakdown.Total())
}

func TestBreakdownClampedTotal(t *testing.T) {
	b := Breakdown{Scores: map[string]float64{"completeness": 40, "accuracy": 35}}
	assert.Equal(t, 75.0, b.Total())
	assert.Equal(t, 60.0, b.ClampedTotal(60))

	neg := Breakdown{Scores: map[string]float64{"a": -5}}
	assert.Equal(t, 0.0, neg.ClampedTotal(60))
}
