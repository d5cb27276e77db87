package portfolio

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

const dateFormat = "2006-01-02"

// PositionRepository handles position database operations
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

var _ domain.PositionRepository = (*PositionRepository)(nil)

const positionColumns = `id, user_id, name, category, symbol, quantity,
	cost_basis_per_unit, current_price_per_unit, acquired_on, account_id,
	interest_rate, maturity_date, notes, created_at`

// ListByUser returns all positions owned by a user. The returned slice
// is a snapshot: callers aggregate over it without holding any lock.
func (r *PositionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Position, error) {
	query := "SELECT " + positionColumns + " FROM positions WHERE user_id = ? ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Get returns a position by id
func (r *PositionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	query := "SELECT " + positionColumns + " FROM positions WHERE id = ?"

	rows, err := r.db.QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query position: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, domain.ErrPositionNotFound
	}

	pos, err := scanPosition(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}

	return &pos, nil
}

// Create inserts a new position, assigning an id if one is not set
func (r *PositionRepository) Create(ctx context.Context, position *domain.Position) error {
	if position.ID == uuid.Nil {
		position.ID = uuid.New()
	}
	if position.CreatedAt.IsZero() {
		position.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO positions
		(id, user_id, name, category, symbol, quantity, cost_basis_per_unit,
		 current_price_per_unit, acquired_on, account_id, interest_rate,
		 maturity_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		position.ID.String(),
		position.UserID,
		strings.TrimSpace(position.Name),
		string(position.Category),
		nullString(position.Symbol),
		position.Quantity.String(),
		position.CostBasisPerUnit.String(),
		position.CurrentPricePerUnit.String(),
		position.AcquiredOn.Format(dateFormat),
		nullUUID(position.AccountID),
		nullDecimal(position.InterestRate),
		nullDate(position.MaturityDate),
		nullString(position.Notes),
		position.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	r.log.Info().Str("id", position.ID.String()).Str("category", string(position.Category)).Msg("Position created")
	return nil
}

// Update replaces the mutable fields of an existing position
func (r *PositionRepository) Update(ctx context.Context, position *domain.Position) error {
	query := `
		UPDATE positions SET
			name = ?, category = ?, symbol = ?, quantity = ?,
			cost_basis_per_unit = ?, current_price_per_unit = ?,
			acquired_on = ?, account_id = ?, interest_rate = ?,
			maturity_date = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		strings.TrimSpace(position.Name),
		string(position.Category),
		nullString(position.Symbol),
		position.Quantity.String(),
		position.CostBasisPerUnit.String(),
		position.CurrentPricePerUnit.String(),
		position.AcquiredOn.Format(dateFormat),
		nullUUID(position.AccountID),
		nullDecimal(position.InterestRate),
		nullDate(position.MaturityDate),
		nullString(position.Notes),
		position.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrPositionNotFound
	}

	r.log.Info().Str("id", position.ID.String()).Msg("Position updated")
	return nil
}

// Delete removes a position by id
func (r *PositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM positions WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrPositionNotFound
	}

	r.log.Info().Str("id", id.String()).Msg("Position deleted")
	return nil
}

// DeleteMany removes a batch of positions and returns how many rows
// were actually deleted
func (r *PositionRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var deleted int64
	for _, id := range ids {
		result, err := tx.ExecContext(ctx, "DELETE FROM positions WHERE id = ?", id.String())
		if err != nil {
			return 0, fmt.Errorf("failed to delete position %s: %w", id, err)
		}
		affected, _ := result.RowsAffected()
		deleted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Info().Int64("rows_affected", deleted).Msg("Positions bulk deleted")
	return deleted, nil
}

// ListUserIDs returns the distinct users with at least one position
func (r *PositionRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM positions ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query user ids: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}

	return userIDs, nil
}

// scanPosition scans a database row into a Position struct
func scanPosition(rows *sql.Rows) (domain.Position, error) {
	var pos domain.Position
	var id, category, quantity, costBasis, currentPrice, acquiredOn, createdAt string
	var symbol, accountID, interestRate, maturityDate, notes sql.NullString

	err := rows.Scan(
		&id,
		&pos.UserID,
		&pos.Name,
		&category,
		&symbol,
		&quantity,
		&costBasis,
		&currentPrice,
		&acquiredOn,
		&accountID,
		&interestRate,
		&maturityDate,
		&notes,
		&createdAt,
	)
	if err != nil {
		return pos, err
	}

	if pos.ID, err = uuid.Parse(id); err != nil {
		return pos, fmt.Errorf("invalid position id %q: %w", id, err)
	}
	pos.Category = domain.Category(category)

	if pos.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return pos, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	if pos.CostBasisPerUnit, err = decimal.NewFromString(costBasis); err != nil {
		return pos, fmt.Errorf("invalid cost basis %q: %w", costBasis, err)
	}
	if pos.CurrentPricePerUnit, err = decimal.NewFromString(currentPrice); err != nil {
		return pos, fmt.Errorf("invalid current price %q: %w", currentPrice, err)
	}
	if pos.AcquiredOn, err = time.Parse(dateFormat, acquiredOn); err != nil {
		return pos, fmt.Errorf("invalid acquired_on %q: %w", acquiredOn, err)
	}
	if pos.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return pos, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}

	if symbol.Valid {
		pos.Symbol = symbol.String
	}
	if notes.Valid {
		pos.Notes = notes.String
	}
	if accountID.Valid {
		parsed, err := uuid.Parse(accountID.String)
		if err != nil {
			return pos, fmt.Errorf("invalid account id %q: %w", accountID.String, err)
		}
		pos.AccountID = &parsed
	}
	if interestRate.Valid {
		rate, err := decimal.NewFromString(interestRate.String)
		if err != nil {
			return pos, fmt.Errorf("invalid interest rate %q: %w", interestRate.String, err)
		}
		pos.InterestRate = &rate
	}
	if maturityDate.Valid {
		parsed, err := time.Parse(dateFormat, maturityDate.String)
		if err != nil {
			return pos, fmt.Errorf("invalid maturity date %q: %w", maturityDate.String, err)
		}
		pos.MaturityDate = &parsed
	}

	return pos, nil
}

// Helper functions for nullable types

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}

func nullUUID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateFormat), Valid: true}
}
