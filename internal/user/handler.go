package user

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/auth"
	"github.com/examsys/exam-core/internal/config"
)

type Handler struct {
	repo UserRepository
}

func NewHandler(repo UserRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	config.JSON(w, http.StatusOK, u)
}
