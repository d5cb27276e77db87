package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PositionRepository provides access to stored positions.
type PositionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Position, error)
	Get(ctx context.Context, id uuid.UUID) (*Position, error)
	Create(ctx context.Context, position *Position) error
	Update(ctx context.Context, position *Position) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// AccountRepository provides read access to a user's bank accounts.
type AccountRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Account, error)
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GoalRepository provides access to stored goals.
type GoalRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Goal, error)
	Get(ctx context.Context, id uuid.UUID) (*Goal, error)
	Create(ctx context.Context, goal *Goal) error
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnapshotRepository persists net-worth snapshots. Upsert replaces an
// existing snapshot for the same user and date.
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *NetWorthSnapshot) error
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]NetWorthSnapshot, error)
}
