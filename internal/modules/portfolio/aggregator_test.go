package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ledgerfolio/internal/domain"
)

func pos(name string, category domain.Category, quantity, cost string) domain.Position {
	return domain.Position{
		Name:                name,
		Category:            category,
		Quantity:            decimal.RequireFromString(quantity),
		CostBasisPerUnit:    decimal.RequireFromString(cost),
		CurrentPricePerUnit: decimal.RequireFromString(cost),
	}
}

func TestAggregate_Empty(t *testing.T) {
	breakdown := Aggregate(nil)
	assert.True(t, breakdown.GrandTotal.IsZero())
	assert.Empty(t, breakdown.Buckets)
}

func TestAggregate_GroupsAndRanks(t *testing.T) {
	positions := []domain.Position{
		pos("Bond fund", domain.CategoryBond, "1", "3000"),
		pos("AAPL", domain.CategoryEquity, "10", "500"),
		pos("MSFT", domain.CategoryEquity, "5", "400"),
	}

	breakdown := Aggregate(positions)

	require.Len(t, breakdown.Buckets, 2)
	assert.True(t, breakdown.GrandTotal.Equal(decimal.RequireFromString("10000")))

	// Equities (7000) rank above bonds (3000).
	assert.Equal(t, domain.CategoryEquity, breakdown.Buckets[0].Category)
	assert.Equal(t, 2, breakdown.Buckets[0].PositionCount)
	assert.True(t, breakdown.Buckets[0].PercentageOfTotal.Equal(decimal.RequireFromString("70")))
	assert.Equal(t, domain.CategoryBond, breakdown.Buckets[1].Category)
	assert.True(t, breakdown.Buckets[1].PercentageOfTotal.Equal(decimal.RequireFromString("30")))

	// Members ordered by contribution descending: AAPL 5000 > MSFT 2000.
	assert.Equal(t, "AAPL", breakdown.Buckets[0].Members[0].Name)
	assert.Equal(t, "MSFT", breakdown.Buckets[0].Members[1].Name)
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	positions := []domain.Position{
		pos("a", domain.CategoryEquity, "1", "123.45"),
		pos("b", domain.CategoryBond, "1", "678.90"),
		pos("c", domain.CategoryCrypto, "1", "11.11"),
		pos("d", domain.CategoryGoalFund, "1", "0.07"),
	}

	breakdown := Aggregate(positions)

	sum := decimal.Zero
	for _, bucket := range breakdown.Buckets {
		sum = sum.Add(bucket.PercentageOfTotal)
	}

	total, _ := sum.Float64()
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestAggregate_ZeroGrandTotal(t *testing.T) {
	positions := []domain.Position{
		pos("zero a", domain.CategoryEquity, "1", "0"),
		pos("zero b", domain.CategoryBond, "1", "0"),
	}

	breakdown := Aggregate(positions)

	assert.True(t, breakdown.GrandTotal.IsZero())
	for _, bucket := range breakdown.Buckets {
		assert.True(t, bucket.PercentageOfTotal.IsZero(), "bucket %s", bucket.Label)
	}
}

func TestAggregate_ThresholdBoundary(t *testing.T) {
	// Exactly 2.0% stays major; 1.999% folds into Others.
	t.Run("exactly two percent is major", func(t *testing.T) {
		positions := []domain.Position{
			pos("big", domain.CategoryEquity, "1", "98"),
			pos("edge", domain.CategoryBond, "1", "2"),
		}

		breakdown := Aggregate(positions)

		require.Len(t, breakdown.Buckets, 2)
		assert.Equal(t, domain.CategoryBond, breakdown.Buckets[1].Category)
		assert.False(t, breakdown.Buckets[1].IsOthers())
	})

	t.Run("just under two percent is minor", func(t *testing.T) {
		positions := []domain.Position{
			pos("big", domain.CategoryEquity, "1", "98.001"),
			pos("edge", domain.CategoryBond, "1", "1.999"),
		}

		breakdown := Aggregate(positions)

		require.Len(t, breakdown.Buckets, 2)
		assert.True(t, breakdown.Buckets[1].IsOthers())
		assert.Equal(t, []domain.Category{domain.CategoryBond}, breakdown.Buckets[1].FoldedCategories)
	})
}

func TestAggregate_OthersAlwaysLast(t *testing.T) {
	// The folded long tail outweighs the smallest major bucket but must
	// still be appended last, never promoted.
	positions := []domain.Position{
		pos("equity", domain.CategoryEquity, "1", "900"),
		pos("bond", domain.CategoryBond, "1", "40"),
		pos("tiny a", domain.CategoryCrypto, "1", "15"),
		pos("tiny b", domain.CategoryPreciousMetal, "1", "15"),
		pos("tiny c", domain.CategoryGoalFund, "1", "15"),
		pos("tiny d", domain.CategoryOther, "1", "15"),
	}

	breakdown := Aggregate(positions)

	require.Len(t, breakdown.Buckets, 3)
	last := breakdown.Buckets[len(breakdown.Buckets)-1]
	require.True(t, last.IsOthers())
	assert.True(t, last.TotalInvested.Equal(decimal.RequireFromString("60")))
	assert.Equal(t, 4, last.PositionCount)
	assert.Len(t, last.FoldedCategories, 4)

	// Others (60) is larger than the bond bucket (40) yet stays last.
	assert.True(t, last.TotalInvested.GreaterThan(breakdown.Buckets[1].TotalInvested))
}

func TestAggregate_TieBrokenByLabel(t *testing.T) {
	positions := []domain.Position{
		pos("metal", domain.CategoryPreciousMetal, "1", "500"),
		pos("crypto", domain.CategoryCrypto, "1", "500"),
	}

	breakdown := Aggregate(positions)

	require.Len(t, breakdown.Buckets, 2)
	assert.Equal(t, "Crypto", breakdown.Buckets[0].Label)
	assert.Equal(t, "Precious Metals", breakdown.Buckets[1].Label)
}

func TestTotalsByCategory_PreFolding(t *testing.T) {
	// A category too small to survive folding still reports its own
	// total, so goal tracking sees it.
	positions := []domain.Position{
		pos("big", domain.CategoryEquity, "1", "9990"),
		pos("tiny", domain.CategoryGoalFund, "1", "10"),
	}

	totals := TotalsByCategory(positions)

	assert.True(t, totals[domain.CategoryGoalFund].Equal(decimal.RequireFromString("10")))
	assert.True(t, totals[domain.CategoryEquity].Equal(decimal.RequireFromString("9990")))
}
