package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

func TestNewTransaction_DerivesCategory(t *testing.T) {
	// Arrange
	var bill ledger.Bill
	bill.AddItem("wood", 10)
	bill.AddCurrency("gold", 50)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Act
	tx, err := ledger.NewTransaction(now, ledger.TransactionTypePlaceBuilding, "house_small-0a1b2c3d", "house_small",
		ledger.EntriesFromBill(bill, -1), "placed house_small")

	// Assert
	require.NoError(t, err)
	assert.False(t, tx.ID().IsZero())
	assert.Equal(t, ledger.CategoryConstruction, tx.Category())
	assert.True(t, tx.IsDebit())
	assert.Equal(t, []ledger.Entry{
		{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: -10},
		{Kind: ledger.ResourceKindCurrency, Resource: "gold", Delta: -50},
	}, tx.Entries())
}

func TestNewTransaction_Validation(t *testing.T) {
	now := time.Now()
	entries := []ledger.Entry{{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: 1}}

	tests := []struct {
		name    string
		ts      time.Time
		typ     ledger.TransactionType
		entries []ledger.Entry
	}{
		{name: "unknown type", ts: now, typ: "BRIBE", entries: entries},
		{name: "zero timestamp", ts: time.Time{}, typ: ledger.TransactionTypeGrant, entries: entries},
		{name: "no entries", ts: now, typ: ledger.TransactionTypeGrant},
		{name: "zero delta", ts: now, typ: ledger.TransactionTypeGrant, entries: []ledger.Entry{{Kind: ledger.ResourceKindItem, Resource: "wood"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewTransaction(tt.ts, tt.typ, "", "", tt.entries, "")

			var invalid *ledger.ErrInvalidTransaction
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestTransactionType_Parse(t *testing.T) {
	for _, typ := range ledger.AllTransactionTypes() {
		parsed, err := ledger.ParseTransactionType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
		category, err := typ.ToCategory()
		require.NoError(t, err)
		assert.True(t, category.IsValid())
	}

	_, err := ledger.ParseCategory("TAXES")
	assert.Error(t, err)
}

func TestParseTransactionID(t *testing.T) {
	id := ledger.NewTransactionID()

	parsed, err := ledger.ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ledger.ParseTransactionID("not-a-uuid")
	assert.Error(t, err)
}
