package answer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ShapeKind string

const (
	ShapeMarker   ShapeKind = "MARKER"
	ShapePolyline ShapeKind = "POLYLINE"
	ShapePolygon  ShapeKind = "POLYGON"
	ShapeRect     ShapeKind = "RECT"
	ShapeCircle   ShapeKind = "CIRCLE"
)

func (k ShapeKind) IsValid() bool {
	switch k {
	case ShapeMarker, ShapePolyline, ShapePolygon, ShapeRect, ShapeCircle:
		return true
	default:
		return false
	}
}

type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type ShapeStyle struct {
	StrokeColor   string  `json:"stroke_color,omitempty"`
	StrokeWeight  float64 `json:"stroke_weight,omitempty"`
	StrokeOpacity float64 `json:"stroke_opacity,omitempty"`
	FillColor     string  `json:"fill_color,omitempty"`
	FillOpacity   float64 `json:"fill_opacity,omitempty"`
	LineStyle     string  `json:"line_style,omitempty"`
	IconKey       string  `json:"icon_key,omitempty"`
}

// Shape is the wire-level representation of one drawn overlay. For a
// marker the coordinate list holds a single point; for a circle it
// holds the center and Radius is set; rects hold the SW and NE corners.
type Shape struct {
	Kind        ShapeKind    `json:"kind"`
	Coordinates []Coordinate `json:"coordinates"`
	Radius      float64      `json:"radius,omitempty"`
	Style       *ShapeStyle  `json:"style,omitempty"`
	Label       string       `json:"label,omitempty"`
}

// Validate rejects shapes the store must never accept.
func (s Shape) Validate() error {
	if !s.Kind.IsValid() {
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if len(s.Coordinates) == 0 {
		return fmt.Errorf("shape of kind %s has no coordinates", s.Kind)
	}
	switch s.Kind {
	case ShapePolyline:
		if len(s.Coordinates) < 2 {
			return fmt.Errorf("polyline needs at least 2 points, got %d", len(s.Coordinates))
		}
	case ShapePolygon:
		if len(s.Coordinates) < 3 {
			return fmt.Errorf("polygon needs at least 3 points, got %d", len(s.Coordinates))
		}
	case ShapeRect:
		if len(s.Coordinates) != 2 {
			return fmt.Errorf("rect needs exactly 2 corner points, got %d", len(s.Coordinates))
		}
	case ShapeCircle:
		if s.Radius <= 0 {
			return fmt.Errorf("circle needs a positive radius")
		}
	}
	return nil
}

// toRow converts a wire shape into a fresh store row for the given
// answer and generation position.
func (s Shape) toRow(answerID uuid.UUID, orderIndex int, now time.Time) (DrawingShape, error) {
	if err := s.Validate(); err != nil {
		return DrawingShape{}, err
	}

	coords, err := json.Marshal(s.Coordinates)
	if err != nil {
		return DrawingShape{}, fmt.Errorf("encode coordinates: %w", err)
	}

	row := DrawingShape{
		ID:          uuid.New(),
		AnswerID:    answerID,
		Kind:        s.Kind,
		Coordinates: datatypes.JSON(coords),
		Radius:      s.Radius,
		Label:       s.Label,
		OrderIndex:  orderIndex,
		CreatedAt:   now,
	}

	if s.Style != nil {
		style, err := json.Marshal(s.Style)
		if err != nil {
			return DrawingShape{}, fmt.Errorf("encode style: %w", err)
		}
		row.Style = datatypes.JSON(style)
	}

	return row, nil
}

// ToShape converts a store row back to its wire representation.
func (d DrawingShape) ToShape() (Shape, error) {
	s := Shape{
		Kind:   d.Kind,
		Radius: d.Radius,
		Label:  d.Label,
	}
	if err := json.Unmarshal(d.Coordinates, &s.Coordinates); err != nil {
		return Shape{}, fmt.Errorf("decode coordinates: %w", err)
	}
	if len(d.Style) > 0 {
		s.Style = &ShapeStyle{}
		if err := json.Unmarshal(d.Style, s.Style); err != nil {
			return Shape{}, fmt.Errorf("decode style: %w", err)
		}
	}
	return s, nil
}
