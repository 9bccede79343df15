package answer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsFromShapes(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		stats := StatisticsFromShapes(nil)
		assert.Equal(t, 0, stats.ShapeCount)
		assert.Nil(t, stats.FirstCreated)
		assert.Equal(t, 0, stats.DurationSeconds)
	})

	t.Run("SingleShapeClampsDuration", func(t *testing.T) {
		stats := StatisticsFromShapes([]DrawingShape{
			{Kind: ShapeMarker, CreatedAt: base},
		})
		assert.Equal(t, 1, stats.ShapeCount)
		assert.Equal(t, 0, stats.DurationSeconds)
	})

	t.Run("CountsByKindAndDuration", func(t *testing.T) {
		updated := base.Add(90 * time.Second)
		stats := StatisticsFromShapes([]DrawingShape{
			{Kind: ShapeMarker, CreatedAt: base},
			{Kind: ShapeMarker, CreatedAt: base.Add(10 * time.Second)},
			{Kind: ShapePolygon, CreatedAt: base.Add(30 * time.Second), UpdatedAt: &updated},
		})

		assert.Equal(t, 3, stats.ShapeCount)
		assert.Equal(t, 2, stats.CountByKind[ShapeMarker])
		assert.Equal(t, 1, stats.CountByKind[ShapePolygon])
		assert.Equal(t, base, *stats.FirstCreated)
		assert.Equal(t, updated, *stats.LastUpdated)
		assert.Equal(t, 90, stats.DurationSeconds)
	})
}

func TestShapeValidate(t *testing.T) {
	cases := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"ValidMarker", Shape{Kind: ShapeMarker, Coordinates: []Coordinate{{Lng: 116.4, Lat: 39.9}}}, false},
		{"UnknownKind", Shape{Kind: "BLOB", Coordinates: []Coordinate{{}}}, true},
		{"NoCoordinates", Shape{Kind: ShapeMarker}, true},
		{"ShortPolyline", Shape{Kind: ShapePolyline, Coordinates: []Coordinate{{}}}, true},
		{"ShortPolygon", Shape{Kind: ShapePolygon, Coordinates: []Coordinate{{}, {}}}, true},
		{"RectWrongCorners", Shape{Kind: ShapeRect, Coordinates: []Coordinate{{}, {}, {}}}, true},
		{"CircleNoRadius", Shape{Kind: ShapeCircle, Coordinates: []Coordinate{{}}}, true},
		{"ValidCircle", Shape{Kind: ShapeCircle, Coordinates: []Coordinate{{Lng: 1, Lat: 2}}, Radius: 50}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shape.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
