package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/examsys/exam-core/internal/paper"
)

type ExamSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LearnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_learner_paper" json:"learnerId"`
	PaperID   uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_learner_paper" json:"paperId"`

	Status Status `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`

	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	SubmitTime *time.Time `json:"submitTime,omitempty"`

	// RemainingTime is the advisory countdown in seconds reported by the
	// client, clamped server-side. The server-computed value wins on read.
	RemainingTime int `gorm:"not null;default:0" json:"remainingTime"`

	ObjectiveScore  float64 `gorm:"not null;default:0" json:"objectiveScore"`
	SubjectiveScore float64 `gorm:"not null;default:0" json:"subjectiveScore"`
	TotalScore      float64 `gorm:"not null;default:0" json:"totalScore"`
	CorrectCount    int     `gorm:"not null;default:0" json:"correctCount"`
	TotalCount      int     `gorm:"not null;default:0" json:"totalCount"`
	IsPassed        bool    `gorm:"not null;default:false" json:"isPassed"`

	GradedAt *time.Time `json:"gradedAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s *ExamSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ExpiredAt reports whether the paper's time window has elapsed for an
// in-progress session at the given instant.
func (s *ExamSession) ExpiredAt(p *paper.ExamPaper, now time.Time) bool {
	if s.Status != StatusInProgress || s.StartTime == nil {
		return false
	}
	return now.Sub(*s.StartTime) >= p.Duration()
}

// RemainingAt returns the authoritative remaining seconds at the given
// instant, clamped to zero.
func (s *ExamSession) RemainingAt(p *paper.ExamPaper, now time.Time) int {
	if s.StartTime == nil {
		return int(p.Duration().Seconds())
	}
	left := p.Duration() - now.Sub(*s.StartTime)
	if left < 0 {
		return 0
	}
	return int(left.Seconds())
}
