package building

import "github.com/andrescamacho/homestead-go/internal/domain/ledger"

// Event is a fire-and-forget notification raised by the building lifecycle
type Event interface {
	EventName() string
}

// EventSink receives events in the order they are raised
type EventSink interface {
	Publish(event Event)
}

// NopSink discards every event
type NopSink struct{}

func (NopSink) Publish(Event) {}

const (
	EventBuildingPlaced        = "building.placed"
	EventBuildingDemolished    = "building.demolished"
	EventBuildingUpgraded      = "building.upgraded"
	EventConstructionCompleted = "building.construction_completed"
	EventProductionOutput      = "building.production_output"
	EventStorageFull           = "building.storage_full"
	EventStorageWithdrawn      = "building.storage_withdrawn"
	EventNotification          = "notification"
)

// BuildingPlaced is raised after a commit created a new instance
type BuildingPlaced struct {
	BuildingID   string
	DefinitionID string
	Pose         Pose
	Cost         ledger.Bill
}

func (BuildingPlaced) EventName() string { return EventBuildingPlaced }

// BuildingDemolished is raised after the refund was credited and the instance removed
type BuildingDemolished struct {
	BuildingID   string
	DefinitionID string
	Tier         int
	Refund       ledger.Bill
}

func (BuildingDemolished) EventName() string { return EventBuildingDemolished }

// BuildingUpgraded is raised when an upgrade was paid and construction of the new tier started
type BuildingUpgraded struct {
	BuildingID   string
	DefinitionID string
	Tier         int
	Cost         ledger.Bill
}

func (BuildingUpgraded) EventName() string { return EventBuildingUpgraded }

// ConstructionCompleted is raised when a building (or tier) becomes active
type ConstructionCompleted struct {
	BuildingID   string
	DefinitionID string
	Tier         int
}

func (ConstructionCompleted) EventName() string { return EventConstructionCompleted }

// ProductionOutput is raised for every successful production cycle.
// ToLedger is set when the output went straight to the inventory.
type ProductionOutput struct {
	BuildingID   string
	DefinitionID string
	ItemID       string
	Quantity     int
	ToLedger     bool
}

func (ProductionOutput) EventName() string { return EventProductionOutput }

// StorageFull is the backpressure signal of a production cycle whose output was forfeited
type StorageFull struct {
	BuildingID   string
	DefinitionID string
	ItemID       string
	Quantity     int
}

func (StorageFull) EventName() string { return EventStorageFull }

// StorageWithdrawn is raised when items are moved from building storage to the inventory
type StorageWithdrawn struct {
	BuildingID   string
	DefinitionID string
	ItemID       string
	Quantity     int
}

func (StorageWithdrawn) EventName() string { return EventStorageWithdrawn }

// Notification carries a short human-readable reason for a rejected action
type Notification struct {
	Reason string
}

func (Notification) EventName() string { return EventNotification }
