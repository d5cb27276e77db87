package goals

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ledgerfolio/internal/domain"
)

var today = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func goal(target string, targetDate *time.Time) domain.Goal {
	return domain.Goal{
		ID:           uuid.New(),
		UserID:       "u1",
		Category:     domain.CategoryEmergencyFund,
		TargetAmount: decimal.RequireFromString(target),
		TargetDate:   targetDate,
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeProgress_Percent(t *testing.T) {
	progress := ComputeProgress(goal("1000", nil), decimal.RequireFromString("250"), today)

	assert.True(t, progress.ProgressPercent.Equal(decimal.RequireFromString("25")))
	assert.False(t, progress.IsComplete)
}

func TestComputeProgress_PercentUnclamped(t *testing.T) {
	// Over-funded goals report more than 100%; clamping is a
	// render-time concern.
	progress := ComputeProgress(goal("1000", nil), decimal.RequireFromString("1500"), today)

	assert.True(t, progress.ProgressPercent.Equal(decimal.RequireFromString("150")))
	assert.True(t, progress.IsComplete)
}

func TestComputeProgress_CompleteIsInclusive(t *testing.T) {
	exact := ComputeProgress(goal("1000", nil), decimal.RequireFromString("1000"), today)
	assert.True(t, exact.IsComplete)

	short := ComputeProgress(goal("1000", nil), decimal.RequireFromString("999.99"), today)
	assert.False(t, short.IsComplete)
}

func TestComputeProgress_NoTargetDate(t *testing.T) {
	// Absent, not defaulted: 0/false would be indistinguishable from
	// "on time".
	progress := ComputeProgress(goal("1000", nil), decimal.RequireFromString("100"), today)

	assert.Nil(t, progress.DaysRemaining)
	assert.Nil(t, progress.IsOverdue)
}

func TestComputeProgress_DaysRemaining(t *testing.T) {
	progress := ComputeProgress(goal("1000", date(2025, time.June, 25)), decimal.RequireFromString("100"), today)

	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, 10, *progress.DaysRemaining)
	require.NotNil(t, progress.IsOverdue)
	assert.False(t, *progress.IsOverdue)
}

func TestComputeProgress_DaysRemainingNegativeWhenPast(t *testing.T) {
	progress := ComputeProgress(goal("1000", date(2025, time.June, 5)), decimal.RequireFromString("100"), today)

	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, -10, *progress.DaysRemaining)
	require.NotNil(t, progress.IsOverdue)
	assert.True(t, *progress.IsOverdue)
}

func TestComputeProgress_TargetDateToday(t *testing.T) {
	progress := ComputeProgress(goal("1000", date(2025, time.June, 15)), decimal.RequireFromString("100"), today)

	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, 0, *progress.DaysRemaining)
	require.NotNil(t, progress.IsOverdue)
	assert.False(t, *progress.IsOverdue, "due today is not overdue")
}

func TestComputeProgress_CompleteNeverOverdue(t *testing.T) {
	// Even a long-past target date is not overdue once the goal is met.
	progress := ComputeProgress(goal("1000", date(2020, time.January, 1)), decimal.RequireFromString("2000"), today)

	assert.True(t, progress.IsComplete)
	require.NotNil(t, progress.IsOverdue)
	assert.False(t, *progress.IsOverdue)
	assert.Nil(t, progress.DaysRemaining)
}
