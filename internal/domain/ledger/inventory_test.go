package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

func houseCost() catalog.Cost {
	return catalog.Cost{
		Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 10}},
		Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 50}},
	}
}

func TestConsumeResources_DebitsExactBill(t *testing.T) {
	// Arrange
	inv := ledger.NewInventory()
	inv.AddItem("wood", 10)
	inv.AddCurrency("gold", 50)

	// Act
	err := ledger.ConsumeResources(inv, ledger.BillFromCost(houseCost()))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, inv.ItemCount("wood"))
	assert.Equal(t, 0, inv.CurrencyBalance("gold"))
}

func TestConsumeResources_ShortfallLeavesLedgerUntouched(t *testing.T) {
	// Arrange
	inv := ledger.NewInventory()
	inv.AddItem("wood", 5)
	inv.AddCurrency("gold", 50)

	// Act
	err := ledger.ConsumeResources(inv, ledger.BillFromCost(houseCost()))

	// Assert
	var insufficient *ledger.InsufficientResourcesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "InsufficientResources: wood (5/10)", err.Error())
	assert.Equal(t, []ledger.Shortfall{{Resource: "wood", Have: 5, Need: 10}}, insufficient.Shortfalls)
	assert.Equal(t, 5, inv.ItemCount("wood"))
	assert.Equal(t, 50, inv.CurrencyBalance("gold"))
}

func TestConsumeResources_ReportsEveryShortfall(t *testing.T) {
	inv := ledger.NewInventory()

	err := ledger.ConsumeResources(inv, ledger.BillFromCost(houseCost()))

	assert.EqualError(t, err, "InsufficientResources: wood (0/10), gold (0/50)")
}

// plainLedger hides Debit so ConsumeResources takes the verify-then-remove path
type plainLedger struct {
	*ledger.Inventory
	failOn string
}

func (p *plainLedger) RemoveCurrency(kind catalog.Currency, amount int) error {
	if string(kind) == p.failOn {
		return errors.New("wallet offline")
	}
	return p.Inventory.RemoveCurrency(kind, amount)
}

func TestConsumeResources_NonAtomicLedgerRollsBack(t *testing.T) {
	// Arrange
	inv := ledger.NewInventory()
	inv.AddItem("wood", 10)
	inv.AddCurrency("gold", 50)
	l := struct{ ledger.ResourceLedger }{&plainLedger{Inventory: inv, failOn: "gold"}}

	// Act
	err := ledger.ConsumeResources(l, ledger.BillFromCost(houseCost()))

	// Assert
	require.Error(t, err)
	assert.Equal(t, 10, inv.ItemCount("wood"))
	assert.Equal(t, 50, inv.CurrencyBalance("gold"))
}

func TestCreditResources(t *testing.T) {
	inv := ledger.NewInventory()
	var bill ledger.Bill
	bill.AddItem("stone", 2)
	bill.AddItem("stone", 3)
	bill.AddCurrency("gold", 7)

	ledger.CreditResources(inv, bill)

	assert.Equal(t, 5, inv.ItemCount("stone"))
	assert.Equal(t, 7, inv.CurrencyBalance("gold"))
	assert.Len(t, bill.Items, 1)
}

func TestInventory_RemoveNeverGoesNegative(t *testing.T) {
	inv := ledger.NewInventory()
	inv.AddItem("wood", 3)
	inv.AddItem("wood", -10)

	err := inv.RemoveItem("wood", 4)

	assert.Error(t, err)
	assert.Equal(t, 3, inv.ItemCount("wood"))
	require.NoError(t, inv.RemoveItem("wood", 3))
	assert.Empty(t, inv.ItemIDs())
}

func TestInventory_SnapshotRestore(t *testing.T) {
	// Arrange
	inv := ledger.NewInventory()
	inv.AddItem("wood", 4)
	inv.AddCurrency("gold", 9)
	snap := inv.Snapshot()

	// Act
	inv.AddItem("wood", 100)
	snap.Items["wood"] = 6
	other := ledger.NewInventory()
	other.Restore(snap)

	// Assert
	assert.Equal(t, 104, inv.ItemCount("wood"))
	assert.Equal(t, 6, other.ItemCount("wood"))
	assert.Equal(t, 9, other.CurrencyBalance("gold"))
	assert.Equal(t, []catalog.Currency{"gold"}, other.CurrencyKinds())
}

func TestBill_String(t *testing.T) {
	assert.Equal(t, "{wood:10, gold:50}", ledger.BillFromCost(houseCost()).String())
	assert.True(t, ledger.BillFromCost(catalog.Cost{Items: []catalog.ItemCost{{ItemID: "x", Quantity: 0}}}).IsEmpty())
}
