package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// SlotRecord is one non-empty storage slot
type SlotRecord struct {
	Slot     int    `json:"slot"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// InstanceRecord is the persisted shape of a placed building. Derived values
// (slot count, production multiplier) are never stored.
type InstanceRecord struct {
	ID              string       `json:"id"`
	DefinitionID    string       `json:"definition_id"`
	Position        [3]float64   `json:"position"`
	Rotation        float64      `json:"rotation"`
	Tier            int          `json:"tier"`
	Status          string       `json:"status"`
	BuildProgress   float64      `json:"build_progress"`
	ProductionTimer float64      `json:"production_timer"`
	CreatedAt       time.Time    `json:"created_at"`
	Storage         []SlotRecord `json:"storage,omitempty"`
}

// LoadError describes a record that could not be turned back into a building
type LoadError struct {
	*shared.DomainError
	BuildingID   string
	DefinitionID string
}

func NewLoadError(buildingID, definitionID, reason string) *LoadError {
	return &LoadError{
		DomainError:  shared.NewDomainError(fmt.Sprintf("cannot load building %s (%s): %s", buildingID, definitionID, reason)),
		BuildingID:   buildingID,
		DefinitionID: definitionID,
	}
}

// Codec converts between live buildings and records, resolving definitions
// against the catalog that is loaded now rather than the one used when saving.
type Codec struct {
	catalog catalog.Catalog
	clock   shared.Clock
}

func NewCodec(c catalog.Catalog, clock shared.Clock) *Codec {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Codec{catalog: c, clock: clock}
}

// Encode returns one record per building, in the given (creation) order
func (c *Codec) Encode(buildings []*building.PlacedBuilding) []InstanceRecord {
	records := make([]InstanceRecord, 0, len(buildings))
	for _, b := range buildings {
		records = append(records, EncodeBuilding(b))
	}
	return records
}

// EncodeBuilding captures a single building
func EncodeBuilding(b *building.PlacedBuilding) InstanceRecord {
	pos := b.Position()
	rec := InstanceRecord{
		ID:              b.ID(),
		DefinitionID:    b.Definition().ID,
		Position:        [3]float64{pos.X, pos.Y, pos.Z},
		Rotation:        b.Rotation(),
		Tier:            b.Tier(),
		Status:          string(b.Status()),
		BuildProgress:   b.BuildProgress(),
		ProductionTimer: b.ProductionTimer(),
		CreatedAt:       b.CreatedAt(),
	}
	for i, slot := range b.Slots() {
		if slot.IsEmpty() {
			continue
		}
		rec.Storage = append(rec.Storage, SlotRecord{Slot: i, ItemID: slot.ItemID, Quantity: slot.Quantity})
	}
	return rec
}

// Decode rebuilds buildings from records. A record that cannot be resolved is
// logged and reported, never fatal: the remaining records still load.
func (c *Codec) Decode(ctx context.Context, records []InstanceRecord) ([]*building.PlacedBuilding, []*LoadError) {
	logger := logging.LoggerFromContext(ctx)

	var (
		out  []*building.PlacedBuilding
		errs []*LoadError
	)
	for _, rec := range records {
		b, err := c.decodeOne(ctx, rec)
		if err != nil {
			logger.Log(logging.LevelWarn, "Skipping saved building", map[string]interface{}{
				"building_id":   rec.ID,
				"definition_id": rec.DefinitionID,
				"error":         err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		out = append(out, b)
	}
	return out, errs
}

func (c *Codec) decodeOne(ctx context.Context, rec InstanceRecord) (*building.PlacedBuilding, *LoadError) {
	logger := logging.LoggerFromContext(ctx)

	def, err := c.catalog.GetDefinition(rec.DefinitionID)
	if err != nil {
		return nil, NewLoadError(rec.ID, rec.DefinitionID, err.Error())
	}

	tier := rec.Tier
	if tier < 0 {
		tier = 0
	}
	if tier > def.MaxTier() {
		tier = def.MaxTier()
	}
	if tier != rec.Tier {
		logger.Log(logging.LevelWarn, "Saved tier out of catalog bounds, clamped", map[string]interface{}{
			"building_id": rec.ID,
			"saved_tier":  rec.Tier,
			"tier":        tier,
		})
	}

	status, err := building.ParseStatus(rec.Status)
	if err != nil {
		return nil, NewLoadError(rec.ID, rec.DefinitionID, err.Error())
	}

	b, err := building.Restore(def, building.RestoreState{
		ID: rec.ID,
		Pose: building.Pose{
			Position: shared.Vec3{X: rec.Position[0], Y: rec.Position[1], Z: rec.Position[2]},
			Rotation: rec.Rotation,
		},
		Tier:            tier,
		Status:          status,
		BuildProgress:   rec.BuildProgress,
		ProductionTimer: rec.ProductionTimer,
		CreatedAt:       rec.CreatedAt,
	}, c.clock)
	if err != nil {
		return nil, NewLoadError(rec.ID, rec.DefinitionID, err.Error())
	}

	for _, slot := range rec.Storage {
		if b.RestoreSlot(slot.Slot, building.Slot{ItemID: slot.ItemID, Quantity: slot.Quantity}) < 0 {
			logger.Log(logging.LevelWarn, "Dropped stored items with no free slot", map[string]interface{}{
				"building_id": rec.ID,
				"slot":        slot.Slot,
				"item_id":     slot.ItemID,
				"quantity":    slot.Quantity,
			})
		}
	}
	return b, nil
}
