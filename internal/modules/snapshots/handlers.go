package snapshots

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "snapshots").Logger(),
	}
}

// HandleGetHistory returns a user's net-worth series with summary
// statistics. Optional from/to query parameters bound the range
// (YYYY-MM-DD).
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var from, to time.Time
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse(dateFormat, raw); err != nil {
			h.writeError(w, http.StatusBadRequest, "from must be formatted YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse(dateFormat, raw); err != nil {
			h.writeError(w, http.StatusBadRequest, "to must be formatted YYYY-MM-DD")
			return
		}
	}

	series, stats, err := h.service.History(r.Context(), userID, from, to)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": series,
		"stats":     stats,
		"count":     len(series),
	})
}

// HandleRecord triggers an immediate snapshot for one user as of the
// given date (defaults to today).
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		AsOf   string `json:"as_of"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != "" {
		var err error
		if asOf, err = time.Parse(dateFormat, req.AsOf); err != nil {
			h.writeError(w, http.StatusBadRequest, "as_of must be formatted YYYY-MM-DD")
			return
		}
	}

	if err := h.service.RecordForUser(r.Context(), req.UserID, asOf); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": req.UserID,
		"as_of":   asOf.Format(dateFormat),
		"success": true,
	})
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
