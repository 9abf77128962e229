package building

import (
	"math"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// RefundBill is what demolishing the building returns: for every tier 0..currentTier,
// floor(quantity * fraction) of each item line flagged for return, where a line without
// its own fraction uses the definition's refund percentage, plus floor(amount * refund
// percentage) of each currency line.
func (b *PlacedBuilding) RefundBill() ledger.Bill {
	def := b.definition
	uniform := def.Demolition.RefundPercentage

	var bill ledger.Bill
	for tier := 0; tier <= b.tier; tier++ {
		cost := def.CostForTier(tier)
		for _, item := range cost.Items {
			if !item.ReturnOnDemolish {
				continue
			}
			fraction := item.ReturnPercentage
			if fraction <= 0 {
				fraction = uniform
			}
			bill.AddItem(item.ItemID, floorShare(item.Quantity, fraction))
		}
		for _, cur := range cost.Currencies {
			bill.AddCurrency(cur.Kind, floorShare(cur.Amount, uniform))
		}
	}
	return bill
}

// CanDemolish reports whether the definition allows demolition and the building still stands
func (b *PlacedBuilding) CanDemolish() bool {
	return b.definition.Demolition.Demolishable && !b.lifecycle.IsDemolished()
}

// Demolish credits the refund and moves the building to DEMOLISHED as one step
func (b *PlacedBuilding) Demolish(l ledger.ResourceLedger, sink EventSink) (ledger.Bill, error) {
	if !b.definition.Demolition.Demolishable {
		return ledger.Bill{}, NewNotDemolishableError(b.id)
	}
	if err := b.lifecycle.Demolish(); err != nil {
		return ledger.Bill{}, err
	}

	refund := b.RefundBill()
	ledger.CreditResources(l, refund)
	if sink != nil {
		sink.Publish(BuildingDemolished{BuildingID: b.id, DefinitionID: b.definition.ID, Tier: b.tier, Refund: refund})
	}
	return refund, nil
}

// floorShare returns floor(amount * fraction), tolerating float noise such as 0.29*100
func floorShare(amount int, fraction float64) int {
	if amount <= 0 || fraction <= 0 {
		return 0
	}
	return int(math.Floor(float64(amount)*fraction + 1e-9))
}
