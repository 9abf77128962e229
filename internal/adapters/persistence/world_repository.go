package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const worldStateRowID = 1

// GormWorldRepository implements world.Repository using GORM.
// Each Save replaces the stored buildings and balances in one database transaction.
type GormWorldRepository struct {
	db      *gorm.DB
	codec   *snapshot.Codec
	players *GormPlayerRepository
	clock   shared.Clock
}

// NewGormWorldRepository creates a new GORM world repository
func NewGormWorldRepository(db *gorm.DB, codec *snapshot.Codec) *GormWorldRepository {
	return &GormWorldRepository{
		db:      db,
		codec:   codec,
		players: NewGormPlayerRepository(db),
		clock:   shared.NewRealClock(),
	}
}

// Load returns nil state when the world was never saved
func (r *GormWorldRepository) Load(ctx context.Context) (*world.State, error) {
	db := r.db.WithContext(ctx)

	var meta WorldStateModel
	if err := db.Where("id = ?", worldStateRowID).First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var buildings []BuildingModel
	if err := db.Preload("Slots").Order("seq ASC").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to load buildings: %w", err)
	}
	records := make([]snapshot.InstanceRecord, len(buildings))
	for i := range buildings {
		records[i] = buildingModelToRecord(&buildings[i])
	}
	restored, loadErrs := r.codec.Decode(ctx, records)
	if len(loadErrs) > 0 {
		logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Some saved buildings could not be loaded", map[string]interface{}{
			"skipped": len(loadErrs),
			"loaded":  len(restored),
		})
	}

	var balances []LedgerBalanceModel
	if err := db.Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to load ledger balances: %w", err)
	}

	p, err := r.players.FindByID(ctx, player.DefaultPlayerID)
	if err != nil {
		var notFound *shared.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		p = nil
	}

	return &world.State{
		Tick:      meta.Tick,
		Elapsed:   meta.Elapsed,
		Buildings: restored,
		Balances:  balanceModelsToBalances(balances),
		Player:    p,
	}, nil
}

// Save replaces the persisted world with the given state
func (r *GormWorldRepository) Save(ctx context.Context, state *world.State) error {
	records := r.codec.Encode(state.Buildings)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&BuildingSlotModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear building slots: %w", err)
		}
		if err := all.Delete(&BuildingModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear buildings: %w", err)
		}
		if err := all.Delete(&LedgerBalanceModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ledger balances: %w", err)
		}

		if len(records) > 0 {
			models := make([]BuildingModel, len(records))
			for i, rec := range records {
				models[i] = recordToBuildingModel(i, rec)
			}
			if err := tx.Create(&models).Error; err != nil {
				return fmt.Errorf("failed to save buildings: %w", err)
			}
		}

		if balances := balancesToModels(state.Balances); len(balances) > 0 {
			if err := tx.Create(&balances).Error; err != nil {
				return fmt.Errorf("failed to save ledger balances: %w", err)
			}
		}

		meta := WorldStateModel{
			ID:      worldStateRowID,
			Tick:    state.Tick,
			Elapsed: state.Elapsed,
			SavedAt: r.clock.Now(),
		}
		if err := tx.Save(&meta).Error; err != nil {
			return fmt.Errorf("failed to save world state: %w", err)
		}

		if state.Player != nil {
			if err := r.players.save(tx, state.Player); err != nil {
				return err
			}
		}
		return nil
	})
}

func recordToBuildingModel(seq int, rec snapshot.InstanceRecord) BuildingModel {
	slots := make([]BuildingSlotModel, len(rec.Storage))
	for i, s := range rec.Storage {
		slots[i] = BuildingSlotModel{
			BuildingID: rec.ID,
			SlotIndex:  s.Slot,
			ItemID:     s.ItemID,
			Quantity:   s.Quantity,
		}
	}
	return BuildingModel{
		ID:              rec.ID,
		Seq:             seq,
		DefinitionID:    rec.DefinitionID,
		PosX:            rec.Position[0],
		PosY:            rec.Position[1],
		PosZ:            rec.Position[2],
		Rotation:        rec.Rotation,
		Tier:            rec.Tier,
		Status:          rec.Status,
		BuildProgress:   rec.BuildProgress,
		ProductionTimer: rec.ProductionTimer,
		CreatedAt:       rec.CreatedAt,
		Slots:           slots,
	}
}

func buildingModelToRecord(model *BuildingModel) snapshot.InstanceRecord {
	rec := snapshot.InstanceRecord{
		ID:              model.ID,
		DefinitionID:    model.DefinitionID,
		Position:        [3]float64{model.PosX, model.PosY, model.PosZ},
		Rotation:        model.Rotation,
		Tier:            model.Tier,
		Status:          model.Status,
		BuildProgress:   model.BuildProgress,
		ProductionTimer: model.ProductionTimer,
		CreatedAt:       model.CreatedAt,
	}
	for _, s := range model.Slots {
		rec.Storage = append(rec.Storage, snapshot.SlotRecord{Slot: s.SlotIndex, ItemID: s.ItemID, Quantity: s.Quantity})
	}
	return rec
}

func balancesToModels(b ledger.Balances) []LedgerBalanceModel {
	var out []LedgerBalanceModel
	for resource, qty := range b.Items {
		if qty > 0 {
			out = append(out, LedgerBalanceModel{Kind: string(ledger.ResourceKindItem), Resource: resource, Quantity: qty})
		}
	}
	for resource, qty := range b.Currencies {
		if qty > 0 {
			out = append(out, LedgerBalanceModel{Kind: string(ledger.ResourceKindCurrency), Resource: resource, Quantity: qty})
		}
	}
	return out
}

func balanceModelsToBalances(models []LedgerBalanceModel) ledger.Balances {
	b := ledger.Balances{Items: make(map[string]int), Currencies: make(map[string]int)}
	for _, m := range models {
		switch ledger.ResourceKind(m.Kind) {
		case ledger.ResourceKindItem:
			b.Items[m.Resource] = m.Quantity
		case ledger.ResourceKindCurrency:
			b.Currencies[m.Resource] = m.Quantity
		}
	}
	return b
}
