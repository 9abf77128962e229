package catalog

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const (
	// DefaultGridCellSize is used when a definition does not set its own cell size
	DefaultGridCellSize = 1.0

	// DefaultRotationSnapAngle is used when a definition does not set its own snap angle
	DefaultRotationSnapAngle = 90.0
)

// Footprint is the grid area (width x depth cells) and world height a building occupies
type Footprint struct {
	Width  int
	Depth  int
	Height float64
}

// Definition is the static description of a building type.
//
// Definitions are shared by every instance placed from them and are treated as read-only
// once registered in a Catalog. Instances hold a pointer, never a copy.
//
// Invariants:
// - Tier costs are monotonically non-decreasing (base cost counts as tier 0)
// - Valid tiers are 0..TierCount()
type Definition struct {
	ID                string
	Name              string
	Description       string
	Category          Category
	Footprint         Footprint
	GridCellSize      float64
	RotationSnapAngle float64

	Cost      Cost
	BuildTime float64

	Requirements  Requirements
	Tiers         []Tier
	Functionality Functionality
	Demolition    DemolitionPolicy
}

// TierCount returns the number of upgrade tiers above the base building
func (d *Definition) TierCount() int {
	return len(d.Tiers)
}

// MaxTier is the highest reachable tier index
func (d *Definition) MaxTier() int {
	return len(d.Tiers)
}

// IsValidTier checks 0 <= tier <= TierCount
func (d *Definition) IsValidTier(tier int) bool {
	return tier >= 0 && tier <= d.TierCount()
}

// CellSize returns the grid cell size, falling back to the default
func (d *Definition) CellSize() float64 {
	if d.GridCellSize <= 0 {
		return DefaultGridCellSize
	}
	return d.GridCellSize
}

// SnapAngle returns the discrete rotation step, falling back to the default
func (d *Definition) SnapAngle() float64 {
	if d.RotationSnapAngle <= 0 {
		return DefaultRotationSnapAngle
	}
	return d.RotationSnapAngle
}

// CostForTier returns the cost paid to reach the given tier (tier 0 is the base cost)
func (d *Definition) CostForTier(tier int) Cost {
	if tier <= 0 {
		return d.Cost
	}
	if tier > d.TierCount() {
		return Cost{}
	}
	return d.Tiers[tier-1].Cost
}

// BuildTimeForTier returns the construction time in seconds for the given tier
func (d *Definition) BuildTimeForTier(tier int) float64 {
	if tier <= 0 {
		return d.BuildTime
	}
	if tier > d.TierCount() {
		return 0
	}
	return d.Tiers[tier-1].BuildTime
}

// GetTotalStorageSlots returns base slots plus the extra slots of every tier up to tier
func (d *Definition) GetTotalStorageSlots(tier int) int {
	total := d.Functionality.Storage.Slots
	for i := 0; i < tier && i < len(d.Tiers); i++ {
		total += d.Tiers[i].ExtraStorageSlots
	}
	if total < 0 {
		return 0
	}
	return total
}

// ProductionSpeedMultiplier returns the production speed factor active at the given tier
func (d *Definition) ProductionSpeedMultiplier(tier int) float64 {
	if tier <= 0 || tier > d.TierCount() {
		return 1.0
	}
	m := d.Tiers[tier-1].ProductionSpeedMultiplier
	if m <= 0 {
		return 1.0
	}
	return m
}

// QualityBonus returns the accumulated quality bonus of every tier up to tier
func (d *Definition) QualityBonus(tier int) float64 {
	bonus := 0.0
	for i := 0; i < tier && i < len(d.Tiers); i++ {
		bonus += d.Tiers[i].QualityBonus
	}
	return bonus
}

// Validate checks the definition's static invariants
func (d *Definition) Validate() error {
	if d.ID == "" {
		return shared.NewValidationError("id", "definition id cannot be empty")
	}
	if !d.Category.IsValid() {
		return shared.NewValidationError("category", fmt.Sprintf("%s: invalid category %q", d.ID, d.Category))
	}
	if d.Footprint.Width <= 0 || d.Footprint.Depth <= 0 || d.Footprint.Height <= 0 {
		return shared.NewValidationError("footprint", fmt.Sprintf("%s: footprint must be positive", d.ID))
	}
	if d.BuildTime < 0 {
		return shared.NewValidationError("build_time", fmt.Sprintf("%s: build time cannot be negative", d.ID))
	}
	if err := validateFraction(d.ID, "demolition.refund_percentage", d.Demolition.RefundPercentage); err != nil {
		return err
	}
	if err := validateCost(d.ID, "cost", d.Cost); err != nil {
		return err
	}
	if d.Functionality.Storage.Slots < 0 || d.Functionality.Storage.StackLimit < 0 {
		return shared.NewValidationError("functionality.storage", fmt.Sprintf("%s: storage cannot be negative", d.ID))
	}

	// upgrade tiers only compare among themselves; the base cost is a different resource mix
	previous := 0
	for i, tier := range d.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		if err := validateCost(d.ID, field+".cost", tier.Cost); err != nil {
			return err
		}
		if tier.BuildTime < 0 {
			return shared.NewValidationError(field+".build_time", fmt.Sprintf("%s: build time cannot be negative", d.ID))
		}
		if tier.ExtraStorageSlots < 0 {
			return shared.NewValidationError(field+".extra_storage_slots", fmt.Sprintf("%s: extra storage slots cannot be negative", d.ID))
		}
		magnitude := tier.Cost.Magnitude()
		if i > 0 && magnitude < previous {
			return shared.NewValidationError(field+".cost", fmt.Sprintf("%s: tier %d is cheaper than tier %d", d.ID, i+1, i))
		}
		previous = magnitude
	}
	return nil
}

func validateCost(defID, field string, cost Cost) error {
	for i, item := range cost.Items {
		if item.ItemID == "" {
			return shared.NewValidationError(fmt.Sprintf("%s.items[%d]", field, i), fmt.Sprintf("%s: item id cannot be empty", defID))
		}
		if item.Quantity < 0 {
			return shared.NewValidationError(fmt.Sprintf("%s.items[%d]", field, i), fmt.Sprintf("%s: quantity cannot be negative", defID))
		}
		if err := validateFraction(defID, fmt.Sprintf("%s.items[%d].return_percentage", field, i), item.ReturnPercentage); err != nil {
			return err
		}
	}
	for i, cur := range cost.Currencies {
		if cur.Kind == "" {
			return shared.NewValidationError(fmt.Sprintf("%s.currencies[%d]", field, i), fmt.Sprintf("%s: currency kind cannot be empty", defID))
		}
		if cur.Amount < 0 {
			return shared.NewValidationError(fmt.Sprintf("%s.currencies[%d]", field, i), fmt.Sprintf("%s: amount cannot be negative", defID))
		}
	}
	return nil
}

func validateFraction(defID, field string, value float64) error {
	if value < 0 || value > 1 {
		return shared.NewValidationError(field, fmt.Sprintf("%s: fraction %.2f outside [0,1]", defID, value))
	}
	return nil
}
