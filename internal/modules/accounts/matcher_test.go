package accounts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/ledgerfolio/internal/domain"
)

func TestMatch(t *testing.T) {
	hdfc := domain.Account{ID: uuid.New(), BankName: "HDFC Bank", AccountNumber: "9876"}
	sbi := domain.Account{ID: uuid.New(), BankName: "SBI", AccountNumber: "1234"}
	known := []domain.Account{hdfc, sbi}

	t.Run("bank name and number", func(t *testing.T) {
		got := Match("HDFC Bank 9876", known)
		require.NotNil(t, got)
		assert.Equal(t, hdfc.ID, *got)
	})

	t.Run("bare bank name", func(t *testing.T) {
		got := Match("SBI", known)
		require.NotNil(t, got)
		assert.Equal(t, sbi.ID, *got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := Match("hdfc bank", known)
		require.NotNil(t, got)
		assert.Equal(t, hdfc.ID, *got)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		got := Match("  HDFC   Bank   9876 ", known)
		require.NotNil(t, got)
		assert.Equal(t, hdfc.ID, *got)
	})

	t.Run("no match is nil, not an error", func(t *testing.T) {
		assert.Nil(t, Match("ICICI", known))
	})

	t.Run("empty label", func(t *testing.T) {
		assert.Nil(t, Match("   ", known))
	})

	t.Run("no accounts", func(t *testing.T) {
		assert.Nil(t, Match("HDFC Bank", nil))
	})
}

func TestMatch_FullLabelWinsOverBareName(t *testing.T) {
	// Two accounts at the same bank: the numbered label must pick the
	// right one, not the first bare-name hit.
	first := domain.Account{ID: uuid.New(), BankName: "HDFC Bank", AccountNumber: "1111"}
	second := domain.Account{ID: uuid.New(), BankName: "HDFC Bank", AccountNumber: "2222"}
	known := []domain.Account{first, second}

	got := Match("hdfc bank 2222", known)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, *got)

	// A bare name resolves to the first account in stable order.
	bare := Match("hdfc bank", known)
	require.NotNil(t, bare)
	assert.Equal(t, first.ID, *bare)
}
