package answer

import "time"

// Statistics is a read-side aggregation over the live shape set of one
// answer.
type Statistics struct {
	ShapeCount      int               `json:"shape_count"`
	CountByKind     map[ShapeKind]int `json:"count_by_kind"`
	FirstCreated    *time.Time        `json:"first_created,omitempty"`
	LastUpdated     *time.Time        `json:"last_updated,omitempty"`
	DurationSeconds int               `json:"duration_seconds"`
}

// StatisticsFromShapes computes statistics over live rows. Duration is
// the span between the first creation and the last update, clamped to
// zero for a single shape or when nothing was ever updated after the
// first write.
func StatisticsFromShapes(shapes []DrawingShape) Statistics {
	stats := Statistics{CountByKind: make(map[ShapeKind]int)}

	for _, s := range shapes {
		stats.ShapeCount++
		stats.CountByKind[s.Kind]++

		created := s.CreatedAt
		if stats.FirstCreated == nil || created.Before(*stats.FirstCreated) {
			c := created
			stats.FirstCreated = &c
		}

		last := created
		if s.UpdatedAt != nil && s.UpdatedAt.After(last) {
			last = *s.UpdatedAt
		}
		if stats.LastUpdated == nil || last.After(*stats.LastUpdated) {
			l := last
			stats.LastUpdated = &l
		}
	}

	if stats.FirstCreated != nil && stats.LastUpdated != nil {
		d := int(stats.LastUpdated.Sub(*stats.FirstCreated).Seconds())
		if d > 0 {
			stats.DurationSeconds = d
		}
	}

	return stats
}
