package importer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles CSV import HTTP requests
type Handler struct {
	importer *Importer
	log      zerolog.Logger
}

// NewHandler creates a new import handler
func NewHandler(importer *Importer, log zerolog.Logger) *Handler {
	return &Handler{
		importer: importer,
		log:      log.With().Str("handler", "importer").Logger(),
	}
}

// HandleImport ingests a raw CSV body for the user given in the
// user_id query parameter and returns the structured import result.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) == 0 {
		h.writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	result, err := h.importer.Import(r.Context(), userID, string(body))
	if err != nil {
		var headerErr *HeaderError
		if errors.As(err, &headerErr) {
			h.writeError(w, http.StatusBadRequest, headerErr.Error())
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("Import failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, result)
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
