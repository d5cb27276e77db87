package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// OthersLabel is the label of the synthesized long-tail bucket.
const OthersLabel = "Others"

// CategoryBucket is one slice of the portfolio breakdown. Buckets are
// derived values, recomputed on every aggregation and never mutated in
// place.
type CategoryBucket struct {
	// Category is empty for the synthesized Others bucket.
	Category          domain.Category   `json:"category,omitempty"`
	Label             string            `json:"label"`
	TotalInvested     decimal.Decimal   `json:"total_invested"`
	PositionCount     int               `json:"position_count"`
	PercentageOfTotal decimal.Decimal   `json:"percentage_of_total"`
	Members           []domain.Position `json:"members"`

	// FoldedCategories lists the original categories folded into the
	// Others bucket, so reporting views can show a breakdown within it.
	FoldedCategories []domain.Category `json:"folded_categories,omitempty"`
}

// IsOthers reports whether the bucket is the synthesized long tail.
func (b CategoryBucket) IsOthers() bool {
	return b.Category == "" && b.Label == OthersLabel
}

// Breakdown is the aggregator output consumed by every presentation
// variant.
type Breakdown struct {
	GrandTotal decimal.Decimal  `json:"grand_total"`
	Buckets    []CategoryBucket `json:"buckets"`
}
