package grading

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Breakdown is the structured score a reviewer (or the auto-grader)
// assigns to a non-objective answer. It is attached to the answer
// record as one blob and only ever replaced whole.
type Breakdown struct {
	Scores   map[string]float64 `json:"scores"`
	Comments map[string]string  `json:"comments,omitempty"`
}

// Total sums the named sub-scores.
func (b Breakdown) Total() float64 {
	var total float64
	for _, s := range b.Scores {
		total += s
	}
	return total
}

// ClampedTotal sums the sub-scores and caps the result at max, the
// question's score weight.
func (b Breakdown) ClampedTotal(max float64) float64 {
	total := b.Total()
	if total > max {
		return max
	}
	if total < 0 {
		return 0
	}
	return total
}

// Encode renders the breakdown for jsonb storage.
func (b Breakdown) Encode() (datatypes.JSON, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode rubric breakdown: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// DecodeBreakdown parses a stored breakdown blob.
func DecodeBreakdown(raw datatypes.JSON) (*Breakdown, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b Breakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode rubric breakdown: %w", err)
	}
	return &b, nil
}
