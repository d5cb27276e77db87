package goals

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

// Repository handles goal database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new goal repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "goal").Logger(),
	}
}

var _ domain.GoalRepository = (*Repository)(nil)

const goalColumns = "id, user_id, category, target_amount, target_date, nickname, created_at"

// ListByUser returns a user's goals
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE user_id = ? ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// Get returns a goal by id
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE id = ?"

	rows, err := r.db.QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, domain.ErrGoalNotFound
	}

	goal, err := scanGoal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	return &goal, nil
}

// Create inserts a new goal. The unique (user_id, category) index backs
// up the service-level duplicate check.
func (r *Repository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO goals (id, user_id, category, target_amount, target_date, nickname, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID.String(),
		goal.UserID,
		string(goal.Category),
		goal.TargetAmount.String(),
		nullDate(goal.TargetDate),
		nullString(goal.Nickname),
		goal.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.ErrDuplicateGoal
		}
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	r.log.Info().Str("id", goal.ID.String()).Str("category", string(goal.Category)).Msg("Goal created")
	return nil
}

// Update replaces the mutable fields of an existing goal
func (r *Repository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `UPDATE goals SET category = ?, target_amount = ?, target_date = ?, nickname = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		string(goal.Category),
		goal.TargetAmount.String(),
		nullDate(goal.TargetDate),
		nullString(goal.Nickname),
		goal.ID.String(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.ErrDuplicateGoal
		}
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrGoalNotFound
	}

	r.log.Info().Str("id", goal.ID.String()).Msg("Goal updated")
	return nil
}

// Delete removes a goal by id
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrGoalNotFound
	}

	r.log.Info().Str("id", id.String()).Msg("Goal deleted")
	return nil
}

func scanGoal(rows *sql.Rows) (domain.Goal, error) {
	var goal domain.Goal
	var id, category, targetAmount, createdAt string
	var targetDate, nickname sql.NullString

	if err := rows.Scan(&id, &goal.UserID, &category, &targetAmount, &targetDate, &nickname, &createdAt); err != nil {
		return goal, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return goal, fmt.Errorf("invalid goal id %q: %w", id, err)
	}
	goal.ID = parsed
	goal.Category = domain.Category(category)

	if goal.TargetAmount, err = decimal.NewFromString(targetAmount); err != nil {
		return goal, fmt.Errorf("invalid target amount %q: %w", targetAmount, err)
	}
	if goal.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return goal, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}

	if targetDate.Valid {
		date, err := time.Parse(dateFormat, targetDate.String)
		if err != nil {
			return goal, fmt.Errorf("invalid target date %q: %w", targetDate.String, err)
		}
		goal.TargetDate = &date
	}
	if nickname.Valid {
		goal.Nickname = nickname.String
	}

	return goal, nil
}

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateFormat), Valid: true}
}
