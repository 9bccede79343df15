package container

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/examsys/exam-core/internal/answer"
	"github.com/examsys/exam-core/internal/auth"
	"github.com/examsys/exam-core/internal/bridge"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/grading"
	"github.com/examsys/exam-core/internal/paper"
	"github.com/examsys/exam-core/internal/question"
	"github.com/examsys/exam-core/internal/session"
	"github.com/examsys/exam-core/internal/user"
)

type Container struct {
	UserContainer    *user.UserContainer
	SessionContainer *session.SessionContainer
	BridgeContainer  *bridge.BridgeContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)

	answerRepo := answer.NewRepository(config.DB)
	paperRepo := paper.NewRepository(config.DB)
	questionRepo := question.NewRepository(config.DB)

	// The registry is shared: the session service pushes submit and
	// clear frames through it, the websocket handler registers hosts
	// into it.
	registry := bridge.NewRegistry()

	sessionContainer := session.NewSessionContainer(
		config.DB,
		answerRepo,
		paperRepo,
		questionRepo,
		registry,
		autoGradeConfig(),
	)

	bridgeContainer := bridge.NewBridgeContainer(
		sessionContainer.Service,
		answerRepo,
		questionRepo,
		registry,
	)

	return &Container{
		UserContainer:    userContainer,
		SessionContainer: sessionContainer,
		BridgeContainer:  bridgeContainer,
	}
}

// autoGradeConfig reads the marker tolerance override, in meters.
func autoGradeConfig() grading.AutoGradeConfig {
	cfg := grading.DefaultAutoGradeConfig()
	if raw := os.Getenv("AUTOGRADE_TOLERANCE_METERS"); raw != "" {
		if meters, err := strconv.ParseFloat(raw, 64); err == nil && meters > 0 {
			cfg.PointToleranceMeters = meters
		}
	}
	return cfg
}
