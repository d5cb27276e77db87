package goals

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ledgerfolio/internal/database"
	"github.com/aristath/ledgerfolio/internal/domain"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestGoalRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	target := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	original := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.RequireFromString("50000.50"),
		TargetDate:   &target,
		Nickname:     "Rainy day",
	}

	require.NoError(t, repo.Create(ctx, original))

	got, err := repo.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.UserID, got.UserID)
	assert.Equal(t, original.Category, got.Category)
	assert.True(t, got.TargetAmount.Equal(original.TargetAmount))
	require.NotNil(t, got.TargetDate)
	assert.True(t, got.TargetDate.Equal(target))
	assert.Equal(t, "Rainy day", got.Nickname)
}

func TestGoalRepository_UniqueCategoryPerUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.NewFromInt(50000),
	}
	require.NoError(t, repo.Create(ctx, first))

	// Same category for the same user is rejected by the unique index.
	clash := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.NewFromInt(70000),
	}
	assert.ErrorIs(t, repo.Create(ctx, clash), domain.ErrDuplicateGoal)

	// Another user may target the same category.
	other := &domain.Goal{
		UserID:       "u2",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.NewFromInt(30000),
	}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestGoalRepository_UpdateOntoTakenCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	emergency := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.NewFromInt(50000),
	}
	require.NoError(t, repo.Create(ctx, emergency))

	gold := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryPreciousMetal,
		TargetAmount: decimal.NewFromInt(20000),
	}
	require.NoError(t, repo.Create(ctx, gold))

	gold.Category = domain.CategoryEmergencyFund
	assert.ErrorIs(t, repo.Update(ctx, gold), domain.ErrDuplicateGoal)
}

func TestGoalRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g := &domain.Goal{
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.NewFromInt(50000),
	}
	require.NoError(t, repo.Create(ctx, g))
	require.NoError(t, repo.Delete(ctx, g.ID))

	_, err := repo.Get(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), domain.ErrGoalNotFound)
}
