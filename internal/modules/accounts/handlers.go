package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// Handler handles account HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new accounts handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "accounts").Logger(),
	}
}

// HandleListAccounts returns a user's accounts
func (h *Handler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	accounts, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// HandleCreateAccount creates a new account
func (h *Handler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string          `json:"user_id"`
		BankName      string          `json:"bank_name"`
		AccountNumber string          `json:"account_number"`
		Balance       decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.BankName == "" {
		h.writeError(w, http.StatusBadRequest, "user_id and bank_name are required")
		return
	}

	account := &domain.Account{
		UserID:        req.UserID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
	}

	if err := h.repo.Create(r.Context(), account); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, account)
}

// HandleDeleteAccount deletes an account. Positions linked to it are
// unlinked, not deleted.
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
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
