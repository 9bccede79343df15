package question

import (
	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/answer"
)

// StudentView is the learner-facing projection of a question. It
// deliberately omits the canonical answer, the reference shapes and the
// rubric.
type StudentView struct {
	ID               uuid.UUID      `json:"id"`
	Type             QuestionType   `json:"type"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	Weight           float64        `json:"weight"`
	TimeLimitSeconds int            `json:"time_limit_seconds,omitempty"`
	DrawingConfig    *DrawingConfig `json:"drawing_config,omitempty"`
	GuidanceShapes   []answer.Shape `json:"guidance_shapes,omitempty"`
}

// NewStudentView builds the learner projection from a question.
func NewStudentView(q *Question) (*StudentView, error) {
	cfg, err := q.DrawingConfig()
	if err != nil {
		return nil, err
	}
	guidance, err := q.GuidanceShapes()
	if err != nil {
		return nil, err
	}

	return &StudentView{
		ID:               q.ID,
		Type:             q.Type,
		Title:            q.Title,
		Content:          q.Content,
		Weight:           q.Weight,
		TimeLimitSeconds: q.TimeLimitSeconds,
		DrawingConfig:    cfg,
		GuidanceShapes:   guidance,
	}, nil
}
