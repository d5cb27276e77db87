package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

const dateFormat = "2006-01-02"

// Repository handles net-worth snapshot database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshot").Logger(),
	}
}

var _ domain.SnapshotRepository = (*Repository)(nil)

// Upsert writes a snapshot, replacing any existing row for the same
// user and date. Re-running the job for a day is idempotent.
func (r *Repository) Upsert(ctx context.Context, snapshot *domain.NetWorthSnapshot) error {
	query := `INSERT OR REPLACE INTO net_worth_snapshots (user_id, as_of, total_invested)
		VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.UserID,
		snapshot.AsOf.Format(dateFormat),
		snapshot.TotalInvested.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	r.log.Debug().
		Str("user_id", snapshot.UserID).
		Str("as_of", snapshot.AsOf.Format(dateFormat)).
		Msg("Snapshot recorded")
	return nil
}

// ListByUser returns a user's snapshots in date order. Zero from/to
// bounds mean unbounded.
func (r *Repository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]domain.NetWorthSnapshot, error) {
	query := "SELECT user_id, as_of, total_invested FROM net_worth_snapshots WHERE user_id = ?"
	args := []interface{}{userID}

	if !from.IsZero() {
		query += " AND as_of >= ?"
		args = append(args, from.Format(dateFormat))
	}
	if !to.IsZero() {
		query += " AND as_of <= ?"
		args = append(args, to.Format(dateFormat))
	}
	query += " ORDER BY as_of"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.NetWorthSnapshot
	for rows.Next() {
		var snap domain.NetWorthSnapshot
		var asOf, total string

		if err := rows.Scan(&snap.UserID, &asOf, &total); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if snap.AsOf, err = time.Parse(dateFormat, asOf); err != nil {
			return nil, fmt.Errorf("invalid as_of %q: %w", asOf, err)
		}
		if snap.TotalInvested, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("invalid total %q: %w", total, err)
		}

		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}
