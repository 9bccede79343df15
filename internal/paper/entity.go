package paper

import (
	"time"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/question"
)

// ExamPaper is read-only from the engine's point of view; authoring is
// an external concern.
type ExamPaper struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title string    `gorm:"type:text;not null" json:"title"`

	// DurationMinutes bounds a session's wall-clock lifetime.
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	TotalScore      float64 `gorm:"not null;default:100" json:"total_score"`

	// PassScore of zero falls back to 60% of TotalScore.
	PassScore float64 `gorm:"not null;default:0" json:"pass_score"`

	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	AllowRetake bool       `gorm:"not null;default:false" json:"allow_retake"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []PaperQuestion `gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type PaperQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PaperID    uuid.UUID `gorm:"type:uuid;not null;index" json:"paper_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`

	// Score overrides the question's own weight within this paper.
	Score float64 `gorm:"not null" json:"score"`

	Question question.Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// EffectivePassScore resolves the explicit pass mark or the 60% default.
func (p *ExamPaper) EffectivePassScore() float64 {
	if p.PassScore > 0 {
		return p.PassScore
	}
	return p.TotalScore * 0.6
}

// AvailableAt reports whether the paper is published and inside its
// availability window at the given instant.
func (p *ExamPaper) AvailableAt(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.StartTime != nil && now.Before(*p.StartTime) {
		return false
	}
	if p.EndTime != nil && now.After(*p.EndTime) {
		return false
	}
	return true
}

// Duration is the paper's time limit as a time.Duration.
func (p *ExamPaper) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}
