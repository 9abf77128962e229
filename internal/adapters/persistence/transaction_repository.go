package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create persists a new transaction together with its entries
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	model := r.transactionToModel(transaction)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID) (*ledger.Transaction, error) {
	var model TransactionModel
	result := r.withEntries(r.db.WithContext(ctx)).
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &ledger.ErrTransactionNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find transaction: %w", result.Error)
	}

	return r.modelToTransaction(&model)
}

// Find retrieves transactions with optional filtering
func (r *GormTransactionRepository) Find(ctx context.Context, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := r.withEntries(r.db.WithContext(ctx))

	query = r.applyFilters(query, opts)
	query = query.Order(orderClause(opts.OrderBy))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", result.Error)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := r.modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}

	return transactions, nil
}

// Count returns the count of transactions matching the criteria
func (r *GormTransactionRepository) Count(ctx context.Context, opts ledger.QueryOptions) (int, error) {
	query := r.db.WithContext(ctx).Model(&TransactionModel{})
	query = r.applyFilters(query, opts)

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", result.Error)
	}

	return int(count), nil
}

func (r *GormTransactionRepository) withEntries(query *gorm.DB) *gorm.DB {
	return query.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// applyFilters applies query options to a GORM query
func (r *GormTransactionRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.StartDate != nil {
		query = query.Where("timestamp >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("timestamp <= ?", *opts.EndDate)
	}
	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}
	if opts.BuildingID != nil {
		query = query.Where("building_id = ?", *opts.BuildingID)
	}
	return query
}

// orderClause only lets the two supported orderings through to SQL
func orderClause(orderBy string) string {
	if strings.EqualFold(strings.TrimSpace(orderBy), "timestamp ASC") {
		return "timestamp ASC"
	}
	return "timestamp DESC"
}

// modelToTransaction converts database model to domain entity
func (r *GormTransactionRepository) modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ID in database: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}

	entries := make([]ledger.Entry, len(model.Entries))
	for i, e := range model.Entries {
		entries[i] = ledger.Entry{
			Kind:     ledger.ResourceKind(e.Kind),
			Resource: e.Resource,
			Delta:    e.Delta,
		}
	}

	return ledger.ReconstructTransaction(
		id,
		model.Timestamp,
		transactionType,
		category,
		model.BuildingID,
		model.DefinitionID,
		entries,
		model.Description,
	), nil
}

// transactionToModel converts domain entity to database model
func (r *GormTransactionRepository) transactionToModel(tx *ledger.Transaction) *TransactionModel {
	entries := tx.Entries()
	models := make([]TransactionEntryModel, len(entries))
	for i, e := range entries {
		models[i] = TransactionEntryModel{
			TransactionID: tx.ID().String(),
			Position:      i,
			Kind:          string(e.Kind),
			Resource:      e.Resource,
			Delta:         e.Delta,
		}
	}

	return &TransactionModel{
		ID:              tx.ID().String(),
		Timestamp:       tx.Timestamp(),
		TransactionType: tx.TransactionType().String(),
		Category:        tx.Category().String(),
		BuildingID:      tx.BuildingID(),
		DefinitionID:    tx.DefinitionID(),
		Description:     tx.Description(),
		CreatedAt:       tx.Timestamp(),
		Entries:         models,
	}
}
