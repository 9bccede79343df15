package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/examsys/exam-core/internal/auth"
	"github.com/examsys/exam-core/internal/bridge"
	"github.com/examsys/exam-core/internal/middlewares"
	"github.com/examsys/exam-core/internal/session"
	"github.com/examsys/exam-core/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	SessionHandler *session.Handler
	BridgeHandler  *bridge.WSHandler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/sessions", session.Routes(cfg.SessionHandler))
		r.Mount("/grading", session.GradingRoutes(cfg.SessionHandler))
		r.Mount("/bridge", bridge.Routes(cfg.BridgeHandler))
	})

	return r
}
