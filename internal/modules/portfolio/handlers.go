package portfolio

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
	"github.com/aristath/ledgerfolio/internal/modules/importer"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// positionRequest is the interactive create/edit payload. Dates use the
// canonical ISO format only; the permissive parser is reserved for bulk
// import.
type positionRequest struct {
	UserID              string           `json:"user_id"`
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Symbol              string           `json:"symbol"`
	Quantity            decimal.Decimal  `json:"quantity"`
	CostBasisPerUnit    decimal.Decimal  `json:"cost_basis_per_unit"`
	CurrentPricePerUnit decimal.Decimal  `json:"current_price_per_unit"`
	AcquiredOn          string           `json:"acquired_on"`
	AccountID           *uuid.UUID       `json:"account_id"`
	InterestRate        *decimal.Decimal `json:"interest_rate"`
	MaturityDate        *string          `json:"maturity_date"`
	Notes               string           `json:"notes"`
}

const canonicalDate = "2006-01-02"

func (req positionRequest) toPosition() (*domain.Position, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	position := &domain.Position{
		UserID:              req.UserID,
		Name:                req.Name,
		Category:            category,
		Symbol:              req.Symbol,
		Quantity:            req.Quantity,
		CostBasisPerUnit:    req.CostBasisPerUnit,
		CurrentPricePerUnit: req.CurrentPricePerUnit,
		AccountID:           req.AccountID,
		InterestRate:        req.InterestRate,
		Notes:               req.Notes,
	}

	if req.AcquiredOn != "" {
		if position.AcquiredOn, err = time.Parse(canonicalDate, req.AcquiredOn); err != nil {
			return nil, errors.New("acquired_on must be formatted YYYY-MM-DD")
		}
	}
	if req.MaturityDate != nil && *req.MaturityDate != "" {
		maturity, err := time.Parse(canonicalDate, *req.MaturityDate)
		if err != nil {
			return nil, errors.New("maturity_date must be formatted YYYY-MM-DD")
		}
		position.MaturityDate = &maturity
	}

	return position, nil
}

// HandleGetBreakdown returns the ranked category breakdown for a user
func (h *Handler) HandleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	breakdown, err := h.service.Breakdown(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, breakdown)
}

// HandleListPositions returns all positions for a user
func (h *Handler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	positions, err := h.service.ListPositions(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// HandleCreatePosition creates a position from a manual entry form
func (h *Handler) HandleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	position, err := req.toPosition()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CreatePosition(r.Context(), position); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, position)
}

// HandleUpdatePosition fully replaces the mutable fields of a position
func (h *Handler) HandleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid position id")
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	position, err := req.toPosition()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	position.ID = id

	if err := h.service.UpdatePosition(r.Context(), position); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, position)
}

// HandleDeletePosition deletes one position
func (h *Handler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid position id")
		return
	}

	if err := h.service.DeletePosition(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

// HandleBulkDeletePositions deletes a batch of positions
func (h *Handler) HandleBulkDeletePositions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		h.writeError(w, http.StatusBadRequest, "No ids provided")
		return
	}

	deleted, err := h.service.DeletePositions(r.Context(), req.IDs)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

// writeServiceError maps service errors onto HTTP statuses. Validation
// failures surface the first violation the way the form expects, with
// the full list alongside.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *importer.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      validationErr.First().Error(),
			"violations": validationErr.Violations,
		})
	case errors.Is(err, domain.ErrPositionNotFound):
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
