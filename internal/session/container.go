package session

import (
	"gorm.io/gorm"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/grading"
	"github.com/examsys/exam-core/internal/paper"
	"github.com/examsys/exam-core/internal/question"
)

type SessionContainer struct {
	Handler *Handler
	Service SessionService
}

func NewSessionContainer(
	db *gorm.DB,
	answerRepo answer.AnswerRepository,
	paperRepo paper.PaperRepository,
	questionRepo question.QuestionRepository,
	surface SurfaceNotifier,
	autoGrade grading.AutoGradeConfig,
) *SessionContainer {
	repo := NewSessionRepository(db)
	service := NewSessionService(repo, answerRepo, paperRepo, questionRepo, surface, autoGrade)
	handler := NewHandler(service)

	return &SessionContainer{
		Handler: handler,
		Service: service,
	}
}
