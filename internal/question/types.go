package question

import "github.com/examsys/exam-core/internal/answer"

// DrawingConfig is everything the drawing surface needs to present a
// map-drawing question. It never carries reference shapes.
type DrawingConfig struct {
	City             string              `json:"city,omitempty"`
	Center           answer.Coordinate   `json:"center"`
	Zoom             int                 `json:"zoom"`
	AllowedKinds     []answer.ShapeKind  `json:"allowed_kinds"`
	Constraints      *DrawingConstraints `json:"constraints,omitempty"`
	TimeLimitSeconds int                 `json:"time_limit_seconds,omitempty"`
}

type DrawingConstraints struct {
	MinShapes int         `json:"min_shapes,omitempty"`
	MaxShapes int         `json:"max_shapes,omitempty"`
	Bounds    *MapBounds  `json:"bounds,omitempty"`
}

type MapBounds struct {
	SouthWest answer.Coordinate `json:"sw"`
	NorthEast answer.Coordinate `json:"ne"`
}

// AllowsKind reports whether the config permits drawing the given kind.
// An empty allow-list permits everything.
func (c *DrawingConfig) AllowsKind(kind answer.ShapeKind) bool {
	if c == nil || len(c.AllowedKinds) == 0 {
		return true
	}
	for _, k := range c.AllowedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// RubricDefinition describes how a non-objective answer is scored.
type RubricDefinition struct {
	Criteria []RubricCriterion `json:"criteria"`
}

type RubricCriterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	MaxScore    float64 `json:"max_score"`
}

// MaxTotal is the sum of criterion maxima.
func (r RubricDefinition) MaxTotal() float64 {
	var total float64
	for _, c := range r.Criteria {
		total += c.MaxScore
	}
	return total
}
