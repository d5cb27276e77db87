package importer

import (
	"strings"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// Violation is one field-level rule failure. The interactive form shows
// the first violation; the bulk pipeline attributes the full list to a
// row number.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	return v.Field + ": " + v.Message
}

// ValidationError bundles the violations of one position candidate.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// First returns the first violation, for single-message surfaces.
func (e *ValidationError) First() Violation {
	return e.Violations[0]
}

// categoryRule captures the per-category field requirements. One table
// consulted by both the interactive and bulk paths, so the two cannot
// diverge.
type categoryRule struct {
	lumpSum          bool
	maturityRequired bool
}

var categoryRules = map[domain.Category]categoryRule{
	domain.CategoryEquity:        {},
	domain.CategoryCrypto:        {},
	domain.CategoryMutualFund:    {},
	domain.CategoryBond:          {},
	domain.CategoryRealEstate:    {},
	domain.CategoryPreciousMetal: {},
	domain.CategoryOther:         {},
	domain.CategoryFixedDeposit:  {lumpSum: true, maturityRequired: true},
	domain.CategoryProvidentFund: {lumpSum: true},
	domain.CategorySafeKeeping:   {lumpSum: true},
	domain.CategoryEmergencyFund: {lumpSum: true},
	domain.CategoryGoalFund:      {lumpSum: true},
}

// ValidatePosition checks a position candidate against the rules for
// its category and returns every violation found. It never mutates its
// input; quantity forcing for lump-sum categories happens when the
// position is built, not here.
func ValidatePosition(p domain.Position) []Violation {
	var violations []Violation

	rule, known := categoryRules[p.Category]
	if !known {
		return append(violations, Violation{Field: "category", Message: "unknown category"})
	}

	if strings.TrimSpace(p.Name) == "" {
		violations = append(violations, Violation{Field: "name", Message: "name is required"})
	}
	if p.AcquiredOn.IsZero() {
		violations = append(violations, Violation{Field: "acquired_on", Message: "acquisition date is required"})
	}

	if rule.lumpSum {
		if !p.CostBasisPerUnit.IsPositive() {
			violations = append(violations, Violation{Field: "cost_basis_per_unit", Message: "principal must be greater than zero"})
		}
		if rule.maturityRequired {
			switch {
			case p.MaturityDate == nil:
				violations = append(violations, Violation{Field: "maturity_date", Message: "maturity date is required for fixed deposits"})
			case !p.AcquiredOn.IsZero() && !p.MaturityDate.After(p.AcquiredOn):
				violations = append(violations, Violation{Field: "maturity_date", Message: "maturity date must be after the acquisition date"})
			}
		}
	} else {
		if !p.Quantity.IsPositive() {
			violations = append(violations, Violation{Field: "quantity", Message: "quantity must be greater than zero"})
		}
		if !p.CostBasisPerUnit.IsPositive() {
			violations = append(violations, Violation{Field: "cost_basis_per_unit", Message: "purchase price must be greater than zero"})
		}
		if p.CurrentPricePerUnit.IsNegative() {
			violations = append(violations, Violation{Field: "current_price_per_unit", Message: "current price cannot be negative"})
		}
	}

	if p.InterestRate != nil && p.InterestRate.IsNegative() {
		violations = append(violations, Violation{Field: "interest_rate", Message: "interest rate cannot be negative"})
	}

	return violations
}
