package answer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnswerRecord stores one response to one question within one session.
// Scalar answers live in RawAnswer; drawn answers live in the
// DrawingShape sub-store and keep a summary here for fast reads.
type AnswerRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"session_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"question_id"`

	RawAnswer *string `gorm:"type:text" json:"raw_answer,omitempty"`

	Score     float64    `gorm:"not null;default:0" json:"score"`
	IsCorrect bool       `gorm:"not null;default:false" json:"is_correct"`
	IsGraded  bool       `gorm:"not null;default:false" json:"is_graded"`
	Comment   *string    `gorm:"type:text" json:"comment,omitempty"`
	GradeTime *time.Time `json:"grade_time,omitempty"`
	GraderID  *uuid.UUID `gorm:"type:uuid" json:"grader_id,omitempty"`

	// Rubric breakdown for subjective/drawing answers, one blob per grade.
	RubricBreakdown datatypes.JSON `gorm:"type:jsonb" json:"rubric_breakdown,omitempty"`

	// Materialized view of the drawn answer, kept in sync with the
	// sub-store on every replace.
	DrawingSummary      datatypes.JSON `gorm:"type:jsonb" json:"drawing_summary,omitempty"`
	DrawDurationSeconds int            `gorm:"not null;default:0" json:"draw_duration_seconds"`

	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// DrawingSummaryView is the fast-read projection stored on the record.
type DrawingSummaryView struct {
	Center     *Coordinate       `json:"center,omitempty"`
	Zoom       int               `json:"zoom,omitempty"`
	ShapeCount int               `json:"shape_count"`
	ByKind     map[ShapeKind]int `json:"by_kind,omitempty"`
}

// SetDrawingSummary replaces the record's materialized summary blob.
func (a *AnswerRecord) SetDrawingSummary(view *DrawingSummaryView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	a.DrawingSummary = datatypes.JSON(raw)
	return nil
}

// GetDrawingSummary decodes the summary blob, nil when there is none.
func (a *AnswerRecord) GetDrawingSummary() (*DrawingSummaryView, error) {
	if len(a.DrawingSummary) == 0 {
		return nil, nil
	}
	var view DrawingSummaryView
	if err := json.Unmarshal(a.DrawingSummary, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// DrawingShape is one softly-versioned row of a drawn answer. A save
// cycle tombstones the live generation and inserts a fresh one; rows
// are never mutated in place or physically deleted.
type DrawingShape struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID uuid.UUID `gorm:"type:uuid;not null;index" json:"answer_id"`

	Kind        ShapeKind      `gorm:"type:text;not null" json:"kind"`
	Coordinates datatypes.JSON `gorm:"type:jsonb;not null" json:"coordinates"`
	Radius      float64        `gorm:"not null;default:0" json:"radius"`
	Style       datatypes.JSON `gorm:"type:jsonb" json:"style,omitempty"`
	Label       string         `gorm:"type:text" json:"label,omitempty"`
	OrderIndex  int            `gorm:"not null;default:0" json:"order_index"`

	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Tombstoned bool       `gorm:"not null;default:false;index" json:"tombstoned"`
}
