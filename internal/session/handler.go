package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/examsys/exam-core/internal/auth"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/grading"
)

type Handler struct {
	service SessionService
}

func NewHandler(service SessionService) *Handler {
	return &Handler{service: service}
}

// statusFor maps service sentinels onto HTTP statuses so handlers stay
// uniform.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrAnswerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrPaperNotAvailable),
		errors.Is(err, ErrAlreadyInProgress),
		errors.Is(err, ErrRetakeNotAllowed),
		errors.Is(err, ErrSessionNotActive),
		errors.Is(err, ErrAlreadyGraded):
		return http.StatusConflict
	case errors.Is(err, ErrQuestionNotInPaper),
		errors.Is(err, ErrAnswerTypeMismatch),
		errors.Is(err, ErrInvalidShape):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	http.Error(w, msg, status)
}

func learnerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return uuid.MustParse(claims.UserID), true
}

func graderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	if claims.Role != "grader" && claims.Role != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return uuid.Nil, false
	}
	return uuid.MustParse(claims.UserID), true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		http.Error(w, name+" required", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

type startRequest struct {
	PaperID uuid.UUID `json:"paperId"`
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PaperID == uuid.Nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Start(r.Context(), uid, req.PaperID)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to start exam session")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, sess)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess, err := h.service.Resume(r.Context(), id, uid)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to resume exam session")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, sess)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}

	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		status = &st
	}

	sessions, err := h.service.ListByLearner(r.Context(), uid, status)
	if err != nil {
		log.WithError(err).Error("Failed to list exam sessions")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, sessions)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "questionId")
	if !ok {
		return
	}

	var sub AnswerSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RecordAnswer(r.Context(), id, uid, questionID, sub); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to record answer")
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateRemainingTime(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateRemainingTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateRemainingTime(r.Context(), id, uid, req.RemainingTime); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to update remaining time")
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.service.Submit(r.Context(), id, uid)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to submit exam session")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, summary)
}

func (h *Handler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	answers, err := h.service.GetAnswers(r.Context(), id, uid)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to load answers")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, answers)
}

func (h *Handler) GetScoreSummary(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	uid, ok := learnerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.service.GetScoreSummary(r.Context(), id, uid)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to load score summary")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, summary)
}

func (h *Handler) ApplyRubric(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	gid, ok := graderID(w, r)
	if !ok {
		return
	}
	answerID, ok := pathID(w, r, "answerId")
	if !ok {
		return
	}

	var req ApplyRubricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Scores) == 0 {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	breakdown := grading.Breakdown{Scores: req.Scores, Comments: req.Comments}
	summary, err := h.service.ApplyRubric(r.Context(), answerID, gid, breakdown, req.Regrade)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to apply rubric grade")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, summary)
}

func (h *Handler) AutoGrade(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	gid, ok := graderID(w, r)
	if !ok {
		return
	}
	answerID, ok := pathID(w, r, "answerId")
	if !ok {
		return
	}

	regrade := r.URL.Query().Get("regrade") == "true"
	result, err := h.service.AutoGradeDrawing(r.Context(), answerID, gid, regrade)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to auto-grade drawing")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) AnswerStatistics(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := graderID(w, r); !ok {
		return
	}
	answerID, ok := pathID(w, r, "answerId")
	if !ok {
		return
	}

	stats, err := h.service.AnswerStatistics(r.Context(), answerID)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			log.WithError(err).Error("Failed to compute answer statistics")
		}
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) PaperStatistics(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := graderID(w, r); !ok {
		return
	}
	paperID, ok := pathID(w, r, "paperId")
	if !ok {
		return
	}

	stats, err := h.service.PaperStatistics(r.Context(), paperID)
	if err != nil {
		log.WithError(err).Error("Failed to compute paper statistics")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}
