package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// RecordTransactionCommand journals one resource movement of the world ledger
type RecordTransactionCommand struct {
	TransactionType string
	BuildingID      string
	DefinitionID    string
	Entries         []ledger.Entry // Positive deltas credit, negative deltas debit
	Description     string
	Timestamp       *time.Time // Optional: defaults to the handler clock
}

// RecordTransactionResponse represents the result of recording a transaction
type RecordTransactionResponse struct {
	TransactionID string
	Timestamp     time.Time
}

// RecordTransactionHandler handles the RecordTransaction command
type RecordTransactionHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler
func NewRecordTransactionHandler(transactionRepo ledger.TransactionRepository, clock shared.Clock) *RecordTransactionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordTransactionHandler{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand")
	}

	transaction, err := h.record(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &RecordTransactionResponse{
		TransactionID: transaction.ID().String(),
		Timestamp:     transaction.Timestamp(),
	}, nil
}

func (h *RecordTransactionHandler) record(ctx context.Context, cmd *RecordTransactionCommand) (*ledger.Transaction, error) {
	transactionType, err := ledger.ParseTransactionType(cmd.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	transaction, err := ledger.NewTransaction(
		timestamp,
		transactionType,
		cmd.BuildingID,
		cmd.DefinitionID,
		cmd.Entries,
		cmd.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(transactionType.String(), transaction.Category().String(), transaction.Entries())
	return transaction, nil
}
