package portfolio

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ledgerfolio/internal/database"
	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/internal/modules/accounts"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func storedPosition(userID, name string) *domain.Position {
	return &domain.Position{
		UserID:              userID,
		Name:                name,
		Category:            domain.CategoryEquity,
		Quantity:            decimal.NewFromInt(10),
		CostBasisPerUnit:    decimal.RequireFromString("150.25"),
		CurrentPricePerUnit: decimal.RequireFromString("175.50"),
		AcquiredOn:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestPositionRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	rate := decimal.RequireFromString("7.1")
	maturity := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	original := &domain.Position{
		UserID:              "u1",
		Name:                "HDFC FD",
		Category:            domain.CategoryFixedDeposit,
		Symbol:              "FD-2024",
		Quantity:            decimal.NewFromInt(1),
		CostBasisPerUnit:    decimal.NewFromInt(50000),
		CurrentPricePerUnit: decimal.NewFromInt(50000),
		AcquiredOn:          time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		InterestRate:        &rate,
		MaturityDate:        &maturity,
		Notes:               "two year deposit",
	}

	require.NoError(t, repo.Create(ctx, original))
	assert.NotEqual(t, uuid.Nil, original.ID, "create assigns an id")

	got, err := repo.Get(ctx, original.ID)
	require.NoError(t, err)

	assert.Equal(t, original.UserID, got.UserID)
	assert.Equal(t, original.Name, got.Name)
	assert.Equal(t, original.Category, got.Category)
	assert.Equal(t, original.Symbol, got.Symbol)
	assert.True(t, got.Quantity.Equal(original.Quantity))
	assert.True(t, got.CostBasisPerUnit.Equal(original.CostBasisPerUnit))
	assert.True(t, got.AcquiredOn.Equal(original.AcquiredOn))
	require.NotNil(t, got.InterestRate)
	assert.True(t, got.InterestRate.Equal(rate))
	require.NotNil(t, got.MaturityDate)
	assert.True(t, got.MaturityDate.Equal(maturity))
	assert.Equal(t, original.Notes, got.Notes)
}

func TestPositionRepository_OptionalFieldsAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	original := storedPosition("u1", "AAPL")
	require.NoError(t, repo.Create(ctx, original))

	got, err := repo.Get(ctx, original.ID)
	require.NoError(t, err)

	assert.Empty(t, got.Symbol)
	assert.Nil(t, got.AccountID)
	assert.Nil(t, got.InterestRate)
	assert.Nil(t, got.MaturityDate)
	assert.Empty(t, got.Notes)
}

func TestPositionRepository_ListByUserIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedPosition("u1", "AAPL")))
	require.NoError(t, repo.Create(ctx, storedPosition("u1", "MSFT")))
	require.NoError(t, repo.Create(ctx, storedPosition("u2", "GOOG")))

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		assert.Equal(t, "u1", p.UserID)
	}

	none, err := repo.ListByUser(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPositionRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	p := storedPosition("u1", "AAPL")
	require.NoError(t, repo.Create(ctx, p))

	p.CurrentPricePerUnit = decimal.RequireFromString("201.10")
	p.Notes = "repriced"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPricePerUnit.Equal(decimal.RequireFromString("201.10")))
	assert.Equal(t, "repriced", got.Notes)
}

func TestPositionRepository_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	ghost := storedPosition("u1", "ghost")
	ghost.ID = uuid.New()
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestPositionRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	p := storedPosition("u1", "AAPL")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrPositionNotFound)
}

func TestPositionRepository_DeleteMany(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	a := storedPosition("u1", "a")
	b := storedPosition("u1", "b")
	c := storedPosition("u1", "c")
	for _, p := range []*domain.Position{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	// One id does not exist; the count reflects actual deletions.
	deleted, err := repo.DeleteMany(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].Name)
}

func TestPositionRepository_ListUserIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedPosition("bob", "a")))
	require.NoError(t, repo.Create(ctx, storedPosition("alice", "b")))
	require.NoError(t, repo.Create(ctx, storedPosition("alice", "c")))

	ids, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, ids)
}

func TestAccountDeleteUnlinksPositions(t *testing.T) {
	db := newTestDB(t)
	positionRepo := NewPositionRepository(db.Conn(), zerolog.Nop())
	accountRepo := accounts.NewRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	account := &domain.Account{UserID: "u1", BankName: "HDFC Bank", AccountNumber: "9876"}
	require.NoError(t, accountRepo.Create(ctx, account))

	p := storedPosition("u1", "linked")
	p.AccountID = &account.ID
	require.NoError(t, positionRepo.Create(ctx, p))

	require.NoError(t, accountRepo.Delete(ctx, account.ID))

	// The position survives, only the link is cleared.
	got, err := positionRepo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AccountID)
}
