package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of position kinds. Field requirements and
// money math differ between unit-based and lump-sum categories, so all
// dispatch goes through this type rather than free-form strings.
type Category string

const (
	CategoryEquity        Category = "equity"
	CategoryCrypto        Category = "crypto"
	CategoryMutualFund    Category = "mutual_fund"
	CategoryBond          Category = "bond"
	CategoryRealEstate    Category = "real_estate"
	CategoryPreciousMetal Category = "precious_metal"
	CategoryFixedDeposit  Category = "fixed_deposit"
	CategoryProvidentFund Category = "provident_fund"
	CategorySafeKeeping   Category = "safe_keeping"
	CategoryEmergencyFund Category = "emergency_fund"
	CategoryGoalFund      Category = "goal_fund"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryEquity,
	CategoryCrypto,
	CategoryMutualFund,
	CategoryBond,
	CategoryRealEstate,
	CategoryPreciousMetal,
	CategoryFixedDeposit,
	CategoryProvidentFund,
	CategorySafeKeeping,
	CategoryEmergencyFund,
	CategoryGoalFund,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryEquity:        "Equities",
	CategoryCrypto:        "Crypto",
	CategoryMutualFund:    "Mutual Funds",
	CategoryBond:          "Bonds",
	CategoryRealEstate:    "Real Estate",
	CategoryPreciousMetal: "Precious Metals",
	CategoryFixedDeposit:  "Fixed Deposits",
	CategoryProvidentFund: "Provident Fund",
	CategorySafeKeeping:   "Safe Keeping",
	CategoryEmergencyFund: "Emergency Fund",
	CategoryGoalFund:      "Goal Funds",
	CategoryOther:         "Other",
}

// Aliases accepted by ParseCategory, keyed by normalized input.
// Import files are uncontrolled, so common spellings map to the
// canonical category.
var categoryAliases = map[string]Category{
	"stock":          CategoryEquity,
	"stocks":         CategoryEquity,
	"share":          CategoryEquity,
	"shares":         CategoryEquity,
	"equities":       CategoryEquity,
	"cryptocurrency": CategoryCrypto,
	"fund":           CategoryMutualFund,
	"funds":          CategoryMutualFund,
	"mutual funds":   CategoryMutualFund,
	"bonds":          CategoryBond,
	"property":       CategoryRealEstate,
	"realestate":     CategoryRealEstate,
	"gold":           CategoryPreciousMetal,
	"metal":          CategoryPreciousMetal,
	"metals":         CategoryPreciousMetal,
	"fd":             CategoryFixedDeposit,
	"fixed deposit":  CategoryFixedDeposit,
	"term deposit":   CategoryFixedDeposit,
	"pf":             CategoryProvidentFund,
	"ppf":            CategoryProvidentFund,
	"locker":         CategorySafeKeeping,
	"emergency":      CategoryEmergencyFund,
	"goal":           CategoryGoalFund,
}

// IsLumpSum reports whether the category is priced as a single
// principal amount rather than unit x price.
func (c Category) IsLumpSum() bool {
	switch c {
	case CategoryFixedDeposit, CategoryProvidentFund, CategorySafeKeeping,
		CategoryEmergencyFund, CategoryGoalFund:
		return true
	}
	return false
}

// IsValid reports whether c is a member of the closed set.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory resolves free text to a Category. Matching is
// case-insensitive and tolerant of spaces, hyphens and a handful of
// aliases seen in import files.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", " ")

	canonical := Category(strings.ReplaceAll(key, " ", "_"))
	if canonical.IsValid() {
		return canonical, nil
	}
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	for c, label := range categoryLabels {
		if strings.EqualFold(label, key) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
