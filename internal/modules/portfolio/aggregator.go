package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/pkg/money"
)

// othersThreshold is the significance cut-off in percent. Categories
// whose share of the grand total is below it fold into the Others
// bucket. Exactly 2.0% stays major. Fixed policy, not configurable.
var othersThreshold = decimal.NewFromInt(2)

var hundred = decimal.NewFromInt(100)

// Aggregate groups positions by category, ranks the buckets by invested
// amount and folds the long tail into a single Others bucket appended
// last. The input slice is treated as a frozen snapshot; the function is
// pure and safe to call concurrently.
func Aggregate(positions []domain.Position) Breakdown {
	totals, counts, members := group(positions)

	grandTotal := decimal.Zero
	for _, total := range totals {
		grandTotal = grandTotal.Add(total)
	}

	var major, minor []CategoryBucket
	for category, total := range totals {
		pct := decimal.Zero
		if grandTotal.IsPositive() {
			pct = total.Div(grandTotal).Mul(hundred)
		}

		bucket := CategoryBucket{
			Category:          category,
			Label:             category.Label(),
			TotalInvested:     total,
			PositionCount:     counts[category],
			PercentageOfTotal: pct,
			Members:           sortByInvestedDesc(members[category]),
		}

		if pct.GreaterThanOrEqual(othersThreshold) {
			major = append(major, bucket)
		} else {
			minor = append(minor, bucket)
		}
	}

	sortBuckets(major)

	buckets := major
	if len(minor) > 0 {
		sortBuckets(minor)
		buckets = append(buckets, foldIntoOthers(minor, grandTotal))
	}

	return Breakdown{GrandTotal: grandTotal, Buckets: buckets}
}

// TotalsByCategory returns per-category invested totals before any
// long-tail folding. Goal tracking uses this so a target follows its
// own category regardless of how small its share is.
func TotalsByCategory(positions []domain.Position) map[domain.Category]decimal.Decimal {
	totals, _, _ := group(positions)
	return totals
}

func group(positions []domain.Position) (
	map[domain.Category]decimal.Decimal,
	map[domain.Category]int,
	map[domain.Category][]domain.Position,
) {
	totals := make(map[domain.Category]decimal.Decimal)
	counts := make(map[domain.Category]int)
	members := make(map[domain.Category][]domain.Position)

	for _, pos := range positions {
		invested := money.Invested(pos)
		if existing, ok := totals[pos.Category]; ok {
			totals[pos.Category] = existing.Add(invested)
		} else {
			totals[pos.Category] = invested
		}
		counts[pos.Category]++
		members[pos.Category] = append(members[pos.Category], pos)
	}

	return totals, counts, members
}

// foldIntoOthers synthesizes the long-tail bucket from the minor
// buckets. It is always appended last, never promoted, whatever its
// combined size.
func foldIntoOthers(minor []CategoryBucket, grandTotal decimal.Decimal) CategoryBucket {
	others := CategoryBucket{Label: OthersLabel, TotalInvested: decimal.Zero}

	for _, bucket := range minor {
		others.TotalInvested = others.TotalInvested.Add(bucket.TotalInvested)
		others.PositionCount += bucket.PositionCount
		others.Members = append(others.Members, bucket.Members...)
		others.FoldedCategories = append(others.FoldedCategories, bucket.Category)
	}

	if grandTotal.IsPositive() {
		others.PercentageOfTotal = others.TotalInvested.Div(grandTotal).Mul(hundred)
	} else {
		others.PercentageOfTotal = decimal.Zero
	}

	others.Members = sortByInvestedDesc(others.Members)
	return others
}

// sortBuckets orders by invested total descending, ties broken by label
// ascending, so output order is deterministic.
func sortBuckets(buckets []CategoryBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		cmp := buckets[i].TotalInvested.Cmp(buckets[j].TotalInvested)
		if cmp != 0 {
			return cmp > 0
		}
		return buckets[i].Label < buckets[j].Label
	})
}

// sortByInvestedDesc orders member positions by individual invested
// amount descending. Stable, so equal contributions keep input order.
func sortByInvestedDesc(positions []domain.Position) []domain.Position {
	sorted := make([]domain.Position, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return money.Invested(sorted[i]).GreaterThan(money.Invested(sorted[j]))
	})
	return sorted
}
