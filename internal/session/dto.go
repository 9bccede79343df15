package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/answer"
)

// AnswerSubmission carries one answer payload. Exactly one of Value or
// Shapes is set depending on the question type.
type AnswerSubmission struct {
	Value               *string        `json:"value,omitempty"`
	Shapes              []answer.Shape `json:"shapes,omitempty"`
	DrawDurationSeconds int            `json:"drawDurationSeconds,omitempty"`
	AutoSave            bool           `json:"autoSave,omitempty"`
}

type ScoreSummary struct {
	SessionID       uuid.UUID  `json:"sessionId"`
	PaperID         uuid.UUID  `json:"paperId"`
	Status          Status     `json:"status"`
	ObjectiveScore  float64    `json:"objectiveScore"`
	SubjectiveScore float64    `json:"subjectiveScore"`
	TotalScore      float64    `json:"totalScore"`
	CorrectCount    int        `json:"correctCount"`
	TotalCount      int        `json:"totalCount"`
	IsPassed        bool       `json:"isPassed"`
	SubmitTime      *time.Time `json:"submitTime,omitempty"`
	GradedAt        *time.Time `json:"gradedAt,omitempty"`
}

func summaryOf(s *ExamSession) *ScoreSummary {
	return &ScoreSummary{
		SessionID:       s.ID,
		PaperID:         s.PaperID,
		Status:          s.Status,
		ObjectiveScore:  s.ObjectiveScore,
		SubjectiveScore: s.SubjectiveScore,
		TotalScore:      s.TotalScore,
		CorrectCount:    s.CorrectCount,
		TotalCount:      s.TotalCount,
		IsPassed:        s.IsPassed,
		SubmitTime:      s.SubmitTime,
		GradedAt:        s.GradedAt,
	}
}

type PaperStatistics struct {
	PaperID           uuid.UUID `json:"paperId"`
	TotalParticipants int       `json:"totalParticipants"`
	CompletedCount    int       `json:"completedCount"`
	PassedCount       int       `json:"passedCount"`
	PassRate          float64   `json:"passRate"`
	AverageScore      float64   `json:"averageScore"`
	HighestScore      float64   `json:"highestScore"`
	LowestScore       float64   `json:"lowestScore"`
}

type UpdateRemainingTimeRequest struct {
	RemainingTime int `json:"remainingTime"`
}

type ApplyRubricRequest struct {
	Scores   map[string]float64 `json:"scores"`
	Comments map[string]string  `json:"comments,omitempty"`
	Regrade  bool               `json:"regrade,omitempty"`
}
