package persistence

import (
	"time"
)

// PlayerModel represents the players table
type PlayerModel struct {
	ID              int        `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name;not null"`
	Level           int        `gorm:"column:level;not null;default:1"`
	CompletedQuests string     `gorm:"column:completed_quests;type:text"` // JSON array as text
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
	LastActive      *time.Time `gorm:"column:last_active"`
	Metadata        string     `gorm:"column:metadata;type:text"` // JSON stored as string
}

func (PlayerModel) TableName() string {
	return "players"
}

// WorldStateModel represents the world_state table (single row, id 1)
type WorldStateModel struct {
	ID      int       `gorm:"column:id;primaryKey"`
	Tick    uint64    `gorm:"column:tick;not null;default:0"`
	Elapsed float64   `gorm:"column:elapsed;not null;default:0"`
	SavedAt time.Time `gorm:"column:saved_at;not null"`
}

func (WorldStateModel) TableName() string {
	return "world_state"
}

// BuildingModel represents the buildings table
type BuildingModel struct {
	ID              string              `gorm:"column:id;primaryKey"`
	Seq             int                 `gorm:"column:seq;not null;index"` // creation order
	DefinitionID    string              `gorm:"column:definition_id;not null;index"`
	PosX            float64             `gorm:"column:pos_x;not null"`
	PosY            float64             `gorm:"column:pos_y;not null"`
	PosZ            float64             `gorm:"column:pos_z;not null"`
	Rotation        float64             `gorm:"column:rotation;not null;default:0"`
	Tier            int                 `gorm:"column:tier;not null;default:0"`
	Status          string              `gorm:"column:status;not null"`
	BuildProgress   float64             `gorm:"column:build_progress;not null;default:0"`
	ProductionTimer float64             `gorm:"column:production_timer;not null;default:0"`
	CreatedAt       time.Time           `gorm:"column:created_at;not null"`
	Slots           []BuildingSlotModel `gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (BuildingModel) TableName() string {
	return "buildings"
}

// BuildingSlotModel represents the building_slots table (non-empty slots only)
type BuildingSlotModel struct {
	BuildingID string `gorm:"column:building_id;primaryKey"`
	SlotIndex  int    `gorm:"column:slot_index;primaryKey"`
	ItemID     string `gorm:"column:item_id;not null"`
	Quantity   int    `gorm:"column:quantity;not null"`
}

func (BuildingSlotModel) TableName() string {
	return "building_slots"
}

// LedgerBalanceModel represents the ledger_balances table
type LedgerBalanceModel struct {
	Kind     string `gorm:"column:kind;primaryKey"` // ITEM or CURRENCY
	Resource string `gorm:"column:resource;primaryKey"`
	Quantity int    `gorm:"column:quantity;not null"`
}

func (LedgerBalanceModel) TableName() string {
	return "ledger_balances"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID              string                  `gorm:"column:id;primaryKey"`
	Timestamp       time.Time               `gorm:"column:timestamp;not null;index:idx_transactions_timestamp"`
	TransactionType string                  `gorm:"column:transaction_type;not null;index:idx_transactions_type"`
	Category        string                  `gorm:"column:category;not null;index:idx_transactions_category"`
	BuildingID      string                  `gorm:"column:building_id;index:idx_transactions_building"`
	DefinitionID    string                  `gorm:"column:definition_id"`
	Description     string                  `gorm:"column:description;type:text"`
	CreatedAt       time.Time               `gorm:"column:created_at;not null"`
	Entries         []TransactionEntryModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionEntryModel represents the transaction_entries table
type TransactionEntryModel struct {
	ID            int    `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID string `gorm:"column:transaction_id;not null;index"`
	Position      int    `gorm:"column:position;not null"`
	Kind          string `gorm:"column:kind;not null"`
	Resource      string `gorm:"column:resource;not null;index"`
	Delta         int    `gorm:"column:delta;not null"`
}

func (TransactionEntryModel) TableName() string {
	return "transaction_entries"
}

// WorldLogModel represents the world_logs table
type WorldLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON stored as string
}

func (WorldLogModel) TableName() string {
	return "world_logs"
}

// AllModels lists every model the schema migration creates
func AllModels() []interface{} {
	return []interface{}{
		&PlayerModel{},
		&WorldStateModel{},
		&BuildingModel{},
		&BuildingSlotModel{},
		&LedgerBalanceModel{},
		&TransactionModel{},
		&TransactionEntryModel{},
		&WorldLogModel{},
	}
}
