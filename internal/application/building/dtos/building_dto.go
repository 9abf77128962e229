package dtos

import (
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// SlotDTO is one storage slot
type SlotDTO struct {
	Index    int
	ItemID   string
	Quantity int
}

// BuildingDTO is a read-only view of a placed building
type BuildingDTO struct {
	ID              string
	DefinitionID    string
	Name            string
	Category        string
	Position        [3]float64
	Rotation        float64
	Tier            int
	MaxTier         int
	Status          string
	BuildProgress   float64
	ProductionTimer float64
	SlotCapacity    int
	Storage         []SlotDTO
	NextTierCost    string
	UpgradeBlocker  string // empty when an upgrade can start now
	Refund          string
	Demolishable    bool
}

// ToBuildingDTO converts a building. The ledger is used to explain why an upgrade
// would be rejected; it may be nil.
func ToBuildingDTO(b *building.PlacedBuilding, l ledger.ResourceLedger) *BuildingDTO {
	def := b.Definition()
	dto := &BuildingDTO{
		ID:              b.ID(),
		DefinitionID:    def.ID,
		Name:            def.Name,
		Category:        def.Category.String(),
		Position:        b.Position().Array(),
		Rotation:        b.Rotation(),
		Tier:            b.Tier(),
		MaxTier:         def.MaxTier(),
		Status:          string(b.Status()),
		BuildProgress:   b.BuildProgress(),
		ProductionTimer: b.ProductionTimer(),
		SlotCapacity:    b.SlotCapacity(),
		Refund:          b.RefundBill().String(),
		Demolishable:    b.CanDemolish(),
	}

	for i, s := range b.Slots() {
		if !s.IsEmpty() {
			dto.Storage = append(dto.Storage, SlotDTO{Index: i, ItemID: s.ItemID, Quantity: s.Quantity})
		}
	}

	if b.Tier() < def.MaxTier() {
		dto.NextTierCost = b.NextTierBill().String()
	}
	if l != nil {
		if err := b.CheckUpgrade(l); err != nil {
			dto.UpgradeBlocker = err.Error()
		}
	}
	return dto
}

// DefinitionDTO summarizes a catalog entry
type DefinitionDTO struct {
	ID            string
	Name          string
	Category      string
	Width         int
	Depth         int
	Height        float64
	BaseCost      string
	BuildTime     float64
	MaxTier       int
	MinLevel      int
	RequiredQuest string
	StorageSlots  int
	Produces      string
	Demolishable  bool
}

// ToDefinitionDTO converts a catalog definition
func ToDefinitionDTO(def *catalog.Definition) *DefinitionDTO {
	dto := &DefinitionDTO{
		ID:            def.ID,
		Name:          def.Name,
		Category:      def.Category.String(),
		Width:         def.Footprint.Width,
		Depth:         def.Footprint.Depth,
		Height:        def.Footprint.Height,
		BaseCost:      ledger.BillFromCost(def.Cost).String(),
		BuildTime:     def.BuildTime,
		MaxTier:       def.MaxTier(),
		MinLevel:      def.Requirements.MinLevel,
		RequiredQuest: def.Requirements.RequiredQuest,
		StorageSlots:  def.Functionality.Storage.Slots,
		Demolishable:  def.Demolition.Demolishable,
	}
	if def.Functionality.ProducesItems() {
		dto.Produces = def.Functionality.Production.ItemID
	}
	return dto
}
