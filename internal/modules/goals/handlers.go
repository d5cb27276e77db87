package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// Handler handles goal HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new goals handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "goals").Logger(),
	}
}

type goalRequest struct {
	UserID       string          `json:"user_id"`
	Category     string          `json:"category"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *string         `json:"target_date"`
	Nickname     string          `json:"nickname"`
}

func (req goalRequest) toGoal() (*domain.Goal, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		UserID:       req.UserID,
		Category:     category,
		TargetAmount: req.TargetAmount,
		Nickname:     req.Nickname,
	}

	if req.TargetDate != nil && *req.TargetDate != "" {
		date, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return nil, errors.New("target_date must be formatted YYYY-MM-DD")
		}
		goal.TargetDate = &date
	}

	return goal, nil
}

// HandleListGoals returns a user's goals
func (h *Handler) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	goals, err := h.service.ListGoals(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"goals": goals,
		"count": len(goals),
	})
}

// HandleCreateGoal creates a new goal
func (h *Handler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	goal, err := req.toGoal()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CreateGoal(r.Context(), goal); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, goal)
}

// HandleUpdateGoal replaces an existing goal
func (h *Handler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := req.toGoal()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal.ID = id

	if err := h.service.UpdateGoal(r.Context(), goal); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, goal)
}

// HandleDeleteGoal deletes a goal
func (h *Handler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	if err := h.service.DeleteGoal(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

// HandleGetProgress returns progress for every goal a user has
func (h *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	progress, err := h.service.ProgressForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": progress,
		"count":    len(progress),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateGoal):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidTarget):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrGoalNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
