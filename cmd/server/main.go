package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/container"
	"github.com/examsys/exam-core/internal/paper"
	"github.com/examsys/exam-core/internal/question"
	"github.com/examsys/exam-core/internal/router"
	"github.com/examsys/exam-core/internal/session"
	"github.com/examsys/exam-core/internal/user"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	c := container.New()
	log := config.Logger()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&question.Question{},
		&paper.ExamPaper{},
		&paper.PaperQuestion{},
		&session.ExamSession{},
		&answer.AnswerRecord{},
		&answer.DrawingShape{},
	); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	handler := router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		SessionHandler: c.SessionContainer.Handler,
		BridgeHandler:  c.BridgeContainer.Handler,
	})

	port := config.Getenv("PORT", "8080")
	log.WithField("port", port).Info("exam-core listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
