package accounts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// Repository handles account database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new account repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "account").Logger(),
	}
}

var _ domain.AccountRepository = (*Repository)(nil)

// ListByUser returns a user's accounts in stable id order
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT id, user_id, bank_name, account_number, balance
		FROM accounts WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// Get returns an account by id
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, user_id, bank_name, account_number, balance
		FROM accounts WHERE id = ?`

	rows, err := r.db.QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, domain.ErrAccountNotFound
	}

	account, err := scanAccount(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	return &account, nil
}

// Create inserts a new account, assigning an id if one is not set
func (r *Repository) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	query := `INSERT INTO accounts (id, user_id, bank_name, account_number, balance)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID.String(),
		account.UserID,
		account.BankName,
		account.AccountNumber,
		account.Balance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	r.log.Info().Str("id", account.ID.String()).Str("bank", account.BankName).Msg("Account created")
	return nil
}

// Delete removes an account. Linked positions are unlinked by the
// ON DELETE SET NULL constraint, never deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	r.log.Info().Str("id", id.String()).Msg("Account deleted")
	return nil
}

func scanAccount(rows *sql.Rows) (domain.Account, error) {
	var account domain.Account
	var id, balance string

	if err := rows.Scan(&id, &account.UserID, &account.BankName, &account.AccountNumber, &balance); err != nil {
		return account, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return account, fmt.Errorf("invalid account id %q: %w", id, err)
	}
	account.ID = parsed

	if account.Balance, err = decimal.NewFromString(balance); err != nil {
		return account, fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	return account, nil
}
