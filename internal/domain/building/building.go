package building

import (
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Pose is the grid-snapped world placement of a building. It never changes after creation.
type Pose struct {
	Position shared.Vec3
	Rotation float64
}

// TickEnv carries the collaborators a building touches during Update
type TickEnv struct {
	Ledger ledger.ResourceLedger
	Sink   EventSink
}

// PlacedBuilding is one structure placed in the world.
//
// Invariants:
// - definition is shared with the catalog and never mutated
// - 0 <= tier <= definition.MaxTier()
// - 0 <= buildProgress <= 1
// - len(storage) is the slot capacity of the last tier that became active
type PlacedBuilding struct {
	id         string
	definition *catalog.Definition
	pose       Pose
	tier       int
	lifecycle  *Lifecycle

	buildProgress   float64
	productionTimer float64
	storage         []Slot

	// derived from the catalog; refreshed whenever the building becomes active
	slotCapacity         int
	productionMultiplier float64
}

// NewPlacedBuilding creates a tier 0 building in CONSTRUCTING state with zero progress
func NewPlacedBuilding(id string, def *catalog.Definition, pose Pose, clock shared.Clock) (*PlacedBuilding, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "building id cannot be empty")
	}
	if def == nil {
		return nil, shared.NewValidationError("definition", "definition cannot be nil")
	}

	b := &PlacedBuilding{
		id:         id,
		definition: def,
		pose:       pose,
		lifecycle:  NewLifecycle(clock),
	}
	b.recomputeDerived(0)
	return b, nil
}

// RestoreState is the persisted part of a building
type RestoreState struct {
	ID              string
	Pose            Pose
	Tier            int
	Status          Status
	BuildProgress   float64
	ProductionTimer float64
	CreatedAt       time.Time
}

// Restore rebuilds a building from persisted state. Derived values come from the
// definition, not from the saved payload; storage starts empty and is refilled
// through RestoreSlot.
func Restore(def *catalog.Definition, state RestoreState, clock shared.Clock) (*PlacedBuilding, error) {
	b, err := NewPlacedBuilding(state.ID, def, state.Pose, clock)
	if err != nil {
		return nil, err
	}
	if !def.IsValidTier(state.Tier) {
		return nil, fmt.Errorf("tier %d out of range 0..%d for %s", state.Tier, def.MaxTier(), def.ID)
	}
	if _, err := ParseStatus(string(state.Status)); err != nil {
		return nil, err
	}

	b.tier = state.Tier
	b.buildProgress = clamp01(state.BuildProgress)
	b.productionTimer = state.ProductionTimer
	if b.productionTimer < 0 {
		b.productionTimer = 0
	}
	b.lifecycle.RecoverFromPersistence(state.Status, state.CreatedAt)
	b.recomputeDerived(b.activeTier())
	return b, nil
}

func (b *PlacedBuilding) ID() string {
	return b.id
}

func (b *PlacedBuilding) Definition() *catalog.Definition {
	return b.definition
}

func (b *PlacedBuilding) Pose() Pose {
	return b.pose
}

func (b *PlacedBuilding) Position() shared.Vec3 {
	return b.pose.Position
}

func (b *PlacedBuilding) Rotation() float64 {
	return b.pose.Rotation
}

func (b *PlacedBuilding) Tier() int {
	return b.tier
}

func (b *PlacedBuilding) Status() Status {
	return b.lifecycle.Status()
}

func (b *PlacedBuilding) Lifecycle() *Lifecycle {
	return b.lifecycle
}

func (b *PlacedBuilding) CreatedAt() time.Time {
	return b.lifecycle.CreatedAt()
}

func (b *PlacedBuilding) BuildProgress() float64 {
	return b.buildProgress
}

func (b *PlacedBuilding) ProductionTimer() float64 {
	return b.productionTimer
}

// SlotCapacity is the cached storage slot count
func (b *PlacedBuilding) SlotCapacity() int {
	return b.slotCapacity
}

// ProductionMultiplier is the cached production speed factor
func (b *PlacedBuilding) ProductionMultiplier() float64 {
	return b.productionMultiplier
}

// ProductionInterval is the effective seconds between production cycles (0 if the building does not produce)
func (b *PlacedBuilding) ProductionInterval() float64 {
	if !b.definition.Functionality.ProducesItems() {
		return 0
	}
	return b.definition.Functionality.Production.Interval / b.productionMultiplier
}

func (b *PlacedBuilding) IsConstructing() bool {
	return b.lifecycle.IsConstructing()
}

func (b *PlacedBuilding) IsActive() bool {
	return b.lifecycle.IsActive()
}

func (b *PlacedBuilding) IsDemolished() bool {
	return b.lifecycle.IsDemolished()
}

// Update advances construction or production by dt seconds
func (b *PlacedBuilding) Update(dt float64, env TickEnv) {
	if dt < 0 {
		dt = 0
	}
	sink := env.Sink
	if sink == nil {
		sink = NopSink{}
	}

	switch b.lifecycle.Status() {
	case StatusConstructing:
		b.advanceConstruction(dt, sink)
	case StatusActive:
		b.advanceProduction(dt, env.Ledger, sink)
	}
}

func (b *PlacedBuilding) advanceConstruction(dt float64, sink EventSink) {
	buildTime := b.definition.BuildTimeForTier(b.tier)
	if buildTime <= 0 {
		b.buildProgress = 1
	} else {
		b.buildProgress = clamp01(b.buildProgress + dt/buildTime)
	}
	if b.buildProgress < 1 {
		return
	}

	if err := b.lifecycle.Complete(); err != nil {
		return
	}
	b.recomputeDerived(b.tier)
	sink.Publish(ConstructionCompleted{BuildingID: b.id, DefinitionID: b.definition.ID, Tier: b.tier})
}

func (b *PlacedBuilding) advanceProduction(dt float64, l ledger.ResourceLedger, sink EventSink) {
	if !b.definition.Functionality.ProducesItems() {
		return
	}

	b.productionTimer += dt
	if b.productionTimer < b.ProductionInterval() {
		return
	}
	b.productionTimer = 0

	spec := b.definition.Functionality.Production
	if b.slotCapacity > 0 {
		if b.AddToStorage(spec.ItemID, spec.Quantity) {
			sink.Publish(ProductionOutput{BuildingID: b.id, DefinitionID: b.definition.ID, ItemID: spec.ItemID, Quantity: spec.Quantity})
			return
		}
		sink.Publish(StorageFull{BuildingID: b.id, DefinitionID: b.definition.ID, ItemID: spec.ItemID, Quantity: spec.Quantity})
		return
	}

	if l == nil {
		sink.Publish(StorageFull{BuildingID: b.id, DefinitionID: b.definition.ID, ItemID: spec.ItemID, Quantity: spec.Quantity})
		return
	}
	l.AddItem(spec.ItemID, spec.Quantity)
	sink.Publish(ProductionOutput{BuildingID: b.id, DefinitionID: b.definition.ID, ItemID: spec.ItemID, Quantity: spec.Quantity, ToLedger: true})
}

// activeTier is the tier whose functionality currently applies: during an upgrade the
// previous tier keeps serving until the new one completes.
func (b *PlacedBuilding) activeTier() int {
	if b.lifecycle.IsConstructing() && b.tier > 0 {
		return b.tier - 1
	}
	return b.tier
}

func (b *PlacedBuilding) recomputeDerived(tier int) {
	b.slotCapacity = b.definition.GetTotalStorageSlots(tier)
	b.productionMultiplier = b.definition.ProductionSpeedMultiplier(tier)
	b.growStorage(b.slotCapacity)
}

func (b *PlacedBuilding) String() string {
	return fmt.Sprintf("Building[%s, def=%s, tier=%d, status=%s, progress=%.2f]",
		b.id, b.definition.ID, b.tier, b.lifecycle.Status(), b.buildProgress)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
