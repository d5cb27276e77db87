package accounts

import (
	"strings"

	"github.com/google/uuid"

	"github.com/aristath/ledgerfolio/internal/domain"
)

// Match resolves a free-text account label from an import row to a
// known account id. It tries "{bank name} {account number}" first, then
// the bare bank name, both case-insensitively on whitespace-normalized
// text. No match returns nil: account linkage is optional and an
// unmatched label is never an import error.
func Match(label string, accounts []domain.Account) *uuid.UUID {
	key := normalizeLabel(label)
	if key == "" {
		return nil
	}

	for _, account := range accounts {
		if normalizeLabel(account.BankName+" "+account.AccountNumber) == key {
			id := account.ID
			return &id
		}
	}

	// Bank name alone. If the user holds several accounts at the same
	// bank this resolves to the first in the repository's stable order;
	// the label with the account number is the disambiguator.
	for _, account := range accounts {
		if normalizeLabel(account.BankName) == key {
			id := account.ID
			return &id
		}
	}

	return nil
}

// normalizeLabel lowercases and collapses runs of whitespace to single
// spaces.
func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
