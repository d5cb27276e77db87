package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position represents a single holding owned by one user.
// For lump-sum categories the quantity is fixed at 1 and
// CostBasisPerUnit holds the principal.
type Position struct {
	ID                  uuid.UUID        `json:"id"`
	UserID              string           `json:"user_id"`
	Name                string           `json:"name"`
	Category            Category         `json:"category"`
	Symbol              string           `json:"symbol,omitempty"`
	Quantity            decimal.Decimal  `json:"quantity"`
	CostBasisPerUnit    decimal.Decimal  `json:"cost_basis_per_unit"`
	CurrentPricePerUnit decimal.Decimal  `json:"current_price_per_unit"`
	AcquiredOn          time.Time        `json:"acquired_on"`
	AccountID           *uuid.UUID       `json:"account_id,omitempty"`
	InterestRate        *decimal.Decimal `json:"interest_rate,omitempty"`
	MaturityDate        *time.Time       `json:"maturity_date,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

// NormalizeQuantity forces quantity to 1 for lump-sum categories,
// whatever the caller supplied. Both entry paths call this before
// persisting.
func (p *Position) NormalizeQuantity() {
	if p.Category.IsLumpSum() {
		p.Quantity = decimal.NewFromInt(1)
	}
}

// Account represents a bank account a position may be linked to.
// The link is weak: deleting an account unlinks positions, it never
// deletes them.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// Goal is a per-category savings target. At most one goal per
// (user, category) pair.
type Goal struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	Category     Category        `json:"category"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *time.Time      `json:"target_date,omitempty"`
	Nickname     string          `json:"nickname,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NetWorthSnapshot is a point-in-time record of a user's total
// invested amount, written by the snapshot job.
type NetWorthSnapshot struct {
	UserID        string          `json:"user_id"`
	AsOf          time.Time       `json:"as_of"`
	TotalInvested decimal.Decimal `json:"total_invested"`
}
