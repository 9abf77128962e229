package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// GetTransactionsQuery represents a query to retrieve journal entries
type GetTransactionsQuery struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Category        *string
	TransactionType *string
	BuildingID      *string
	Limit           int
	Offset          int
	OrderBy         string
}

// GetTransactionsResponse represents the result of the query
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
	Total        int
}

// EntryDTO is one resource movement of a transaction
type EntryDTO struct {
	Kind     string
	Resource string
	Delta    int
}

// TransactionDTO represents a transaction data transfer object
type TransactionDTO struct {
	ID           string
	Timestamp    time.Time
	Type         string
	Category     string
	BuildingID   string
	DefinitionID string
	Entries      []EntryDTO
	Description  string
}

// GetTransactionsHandler handles the GetTransactions query
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetTransactionsHandler creates a new GetTransactionsHandler
func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	opts, err := buildQueryOptions(query)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactionRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	total, err := h.transactionRepo.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = toDTO(tx)
	}

	return &GetTransactionsResponse{
		Transactions: dtos,
		Total:        total,
	}, nil
}

func buildQueryOptions(query *GetTransactionsQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()
	opts.StartDate = query.StartDate
	opts.EndDate = query.EndDate

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return opts, fmt.Errorf("invalid category: %w", err)
		}
		opts.Category = &category
	}

	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return opts, fmt.Errorf("invalid transaction type: %w", err)
		}
		opts.TransactionType = &txType
	}

	opts.BuildingID = query.BuildingID

	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset

	if query.OrderBy != "" {
		opts.OrderBy = query.OrderBy
	}
	return opts, nil
}

func toDTO(tx *ledger.Transaction) *TransactionDTO {
	entries := tx.Entries()
	dtoEntries := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtoEntries[i] = EntryDTO{Kind: string(e.Kind), Resource: e.Resource, Delta: e.Delta}
	}

	return &TransactionDTO{
		ID:           tx.ID().String(),
		Timestamp:    tx.Timestamp(),
		Type:         tx.TransactionType().String(),
		Category:     tx.Category().String(),
		BuildingID:   tx.BuildingID(),
		DefinitionID: tx.DefinitionID(),
		Entries:      dtoEntries,
		Description:  tx.Description(),
	}
}
