package building

import (
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// NextTierBill is the bill for reaching tier+1 (empty at max tier)
func (b *PlacedBuilding) NextTierBill() ledger.Bill {
	if b.tier >= b.definition.MaxTier() {
		return ledger.Bill{}
	}
	return ledger.BillFromCost(b.definition.CostForTier(b.tier + 1))
}

// CheckUpgrade returns nil when Upgrade would succeed against the given ledger
func (b *PlacedBuilding) CheckUpgrade(l ledger.ResourceLedger) error {
	switch {
	case b.lifecycle.IsDemolished():
		return NewUpgradeUnavailableError(b.id, ReasonDemolished, nil)
	case b.lifecycle.IsConstructing():
		return NewUpgradeUnavailableError(b.id, ReasonUnderConstruction, nil)
	case b.tier >= b.definition.MaxTier():
		return NewUpgradeUnavailableError(b.id, ReasonMaxTier, nil)
	}

	if shortfalls := ledger.ShortfallsFor(l, b.NextTierBill()); len(shortfalls) > 0 {
		cause := ledger.NewInsufficientResourcesError(shortfalls)
		return NewUpgradeUnavailableError(b.id, cause.Error(), cause)
	}
	return nil
}

// CanUpgrade reports whether CheckUpgrade passes
func (b *PlacedBuilding) CanUpgrade(l ledger.ResourceLedger) bool {
	return b.CheckUpgrade(l) == nil
}

// Upgrade pays for the next tier and restarts construction at that tier. Any failure
// leaves the building and the ledger exactly as they were.
func (b *PlacedBuilding) Upgrade(l ledger.ResourceLedger, sink EventSink) error {
	if err := b.CheckUpgrade(l); err != nil {
		return err
	}

	bill := b.NextTierBill()
	if err := ledger.ConsumeResources(l, bill); err != nil {
		return NewUpgradeUnavailableError(b.id, err.Error(), err)
	}
	if err := b.lifecycle.BeginUpgrade(); err != nil {
		ledger.CreditResources(l, bill)
		return NewUpgradeUnavailableError(b.id, err.Error(), err)
	}

	b.tier++
	b.buildProgress = 0
	if sink != nil {
		sink.Publish(BuildingUpgraded{BuildingID: b.id, DefinitionID: b.definition.ID, Tier: b.tier, Cost: bill})
	}
	return nil
}
