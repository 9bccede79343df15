package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)
	r.Get("/", h.List)
	r.Get("/{id}", h.Resume)
	r.Post("/{id}/submit", h.Submit)
	r.Put("/{id}/remaining-time", h.UpdateRemainingTime)
	r.Get("/{id}/answers", h.GetAnswers)
	r.Put("/{id}/answers/{questionId}", h.RecordAnswer)
	r.Get("/{id}/summary", h.GetScoreSummary)

	return r
}

// GradingRoutes exposes the reviewer surface, mounted separately so the
// router can guard it with role checks.
func GradingRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/answers/{answerId}/rubric", h.ApplyRubric)
	r.Post("/answers/{answerId}/auto", h.AutoGrade)
	r.Get("/answers/{answerId}/statistics", h.AnswerStatistics)
	r.Get("/papers/{paperId}/statistics", h.PaperStatistics)

	return r
}
