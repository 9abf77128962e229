package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// Journal turns ledger-affecting world events into RecordTransaction commands
type Journal struct {
	ctx      context.Context
	mediator mediator.Mediator
}

// NewJournal creates a journal that sends commands with ctx, which also carries the logger
func NewJournal(ctx context.Context, m mediator.Mediator) *Journal {
	return &Journal{ctx: ctx, mediator: m}
}

// Attach subscribes the journal to the events that move resources
func (j *Journal) Attach(bus *events.Bus) {
	bus.Subscribe(j.record,
		building.EventBuildingPlaced,
		building.EventBuildingUpgraded,
		building.EventBuildingDemolished,
		building.EventProductionOutput,
		building.EventStorageWithdrawn,
	)
}

func (j *Journal) record(event building.Event) {
	cmd := TransactionForEvent(event)
	if cmd == nil {
		return
	}
	if _, err := j.mediator.Send(j.ctx, cmd); err != nil {
		logging.LoggerFromContext(j.ctx).Log(logging.LevelError, "Failed to journal event", map[string]interface{}{
			"event":       event.EventName(),
			"building_id": cmd.BuildingID,
			"error":       err.Error(),
		})
	}
}

// TransactionForEvent maps an event to its journal entry. It returns nil for events
// that did not move resources through the inventory.
func TransactionForEvent(event building.Event) *RecordTransactionCommand {
	switch e := event.(type) {
	case building.BuildingPlaced:
		return billTransaction(ledger.TransactionTypePlaceBuilding, e.BuildingID, e.DefinitionID, e.Cost, -1,
			fmt.Sprintf("Placed %s", e.DefinitionID))
	case building.BuildingUpgraded:
		return billTransaction(ledger.TransactionTypeUpgradeBuilding, e.BuildingID, e.DefinitionID, e.Cost, -1,
			fmt.Sprintf("Upgraded %s to tier %d", e.DefinitionID, e.Tier))
	case building.BuildingDemolished:
		return billTransaction(ledger.TransactionTypeDemolishRefund, e.BuildingID, e.DefinitionID, e.Refund, 1,
			fmt.Sprintf("Demolished %s at tier %d", e.DefinitionID, e.Tier))
	case building.ProductionOutput:
		if !e.ToLedger {
			return nil
		}
		return itemTransaction(ledger.TransactionTypeProductionOutput, e.BuildingID, e.DefinitionID, e.ItemID, e.Quantity,
			fmt.Sprintf("%s produced %d %s", e.DefinitionID, e.Quantity, e.ItemID))
	case building.StorageWithdrawn:
		return itemTransaction(ledger.TransactionTypeStorageWithdrawal, e.BuildingID, e.DefinitionID, e.ItemID, e.Quantity,
			fmt.Sprintf("Took %d %s from %s", e.Quantity, e.ItemID, e.BuildingID))
	}
	return nil
}

func billTransaction(t ledger.TransactionType, buildingID, definitionID string, bill ledger.Bill, sign int, desc string) *RecordTransactionCommand {
	if bill.IsEmpty() {
		return nil
	}
	return &RecordTransactionCommand{
		TransactionType: t.String(),
		BuildingID:      buildingID,
		DefinitionID:    definitionID,
		Entries:         ledger.EntriesFromBill(bill, sign),
		Description:     desc,
	}
}

func itemTransaction(t ledger.TransactionType, buildingID, definitionID, itemID string, quantity int, desc string) *RecordTransactionCommand {
	if quantity <= 0 {
		return nil
	}
	return &RecordTransactionCommand{
		TransactionType: t.String(),
		BuildingID:      buildingID,
		DefinitionID:    definitionID,
		Entries:         []ledger.Entry{{Kind: ledger.ResourceKindItem, Resource: itemID, Delta: quantity}},
		Description:     desc,
	}
}
