package question

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/examsys/exam-core/internal/answer"
)

// Question is owned by the authoring subsystem; the engine reads it to
// grade answers and to configure the drawing surface.
type Question struct {
	ID      uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BankID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"bank_id"`
	Type    QuestionType `gorm:"type:text;not null" json:"type"`
	Title   string       `gorm:"type:text;not null" json:"title"`
	Content string       `gorm:"type:text" json:"content"`

	// CanonicalAnswer encoding by type: single choice / true-false hold
	// the option label; multiple choice holds comma-separated labels;
	// fill-in holds accepted strings separated by '|'.
	CanonicalAnswer string `gorm:"type:text" json:"-"`

	Weight           float64 `gorm:"not null;default:0" json:"weight"`
	TimeLimitSeconds int     `gorm:"not null;default:0" json:"time_limit_seconds"`

	// Fill-in answers compare case-insensitively unless this is set.
	CaseSensitive bool `gorm:"not null;default:false" json:"case_sensitive"`

	// Drawing question configuration blobs. Reference shapes and the
	// rubric are grader-side data and never reach a learner surface.
	DrawingConfigJSON   datatypes.JSON `gorm:"type:jsonb" json:"-"`
	GuidanceShapesJSON  datatypes.JSON `gorm:"type:jsonb" json:"-"`
	ReferenceShapesJSON datatypes.JSON `gorm:"type:jsonb" json:"-"`
	RubricJSON          datatypes.JSON `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (q *Question) DrawingConfig() (*DrawingConfig, error) {
	if len(q.DrawingConfigJSON) == 0 {
		return nil, nil
	}
	var cfg DrawingConfig
	if err := json.Unmarshal(q.DrawingConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("decode drawing config: %w", err)
	}
	return &cfg, nil
}

func (q *Question) SetDrawingConfig(cfg *DrawingConfig) error {
	return q.setJSON(&q.DrawingConfigJSON, cfg)
}

func (q *Question) GuidanceShapes() ([]answer.Shape, error) {
	return decodeShapes(q.GuidanceShapesJSON)
}

func (q *Question) SetGuidanceShapes(shapes []answer.Shape) error {
	return q.setJSON(&q.GuidanceShapesJSON, shapes)
}

func (q *Question) ReferenceShapes() ([]answer.Shape, error) {
	return decodeShapes(q.ReferenceShapesJSON)
}

func (q *Question) SetReferenceShapes(shapes []answer.Shape) error {
	return q.setJSON(&q.ReferenceShapesJSON, shapes)
}

func (q *Question) Rubric() (*RubricDefinition, error) {
	if len(q.RubricJSON) == 0 {
		return nil, nil
	}
	var def RubricDefinition
	if err := json.Unmarshal(q.RubricJSON, &def); err != nil {
		return nil, fmt.Errorf("decode rubric: %w", err)
	}
	return &def, nil
}

func (q *Question) SetRubric(def *RubricDefinition) error {
	return q.setJSON(&q.RubricJSON, def)
}

func (q *Question) setJSON(dst *datatypes.JSON, v interface{}) error {
	if v == nil {
		*dst = nil
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*dst = datatypes.JSON(raw)
	return nil
}

func decodeShapes(raw datatypes.JSON) ([]answer.Shape, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var shapes []answer.Shape
	if err := json.Unmarshal(raw, &shapes); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	return shapes, nil
}
