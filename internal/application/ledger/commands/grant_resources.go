package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GrantResourcesCommand credits items and currencies to the inventory outside of gameplay
type GrantResourcesCommand struct {
	Items       map[string]int
	Currencies  map[string]int
	Description string
}

// GrantResourcesResponse reports the credited bill and its journal entry
type GrantResourcesResponse struct {
	Granted       ledger.Bill
	TransactionID string
}

// GrantResourcesHandler handles the GrantResources command
type GrantResourcesHandler struct {
	host     *world.Host
	recorder *RecordTransactionHandler
}

// NewGrantResourcesHandler creates a new GrantResourcesHandler
func NewGrantResourcesHandler(host *world.Host, recorder *RecordTransactionHandler) *GrantResourcesHandler {
	return &GrantResourcesHandler{host: host, recorder: recorder}
}

// Handle executes the GrantResources command
func (h *GrantResourcesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*GrantResourcesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GrantResourcesCommand")
	}

	bill, err := grantBill(cmd)
	if err != nil {
		return nil, err
	}

	err = h.host.Mutate(ctx, func(w *world.World) error {
		ledger.CreditResources(w.Inventory(), bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	description := cmd.Description
	if description == "" {
		description = "Granted " + bill.String()
	}
	transaction, err := h.recorder.record(ctx, &RecordTransactionCommand{
		TransactionType: ledger.TransactionTypeGrant.String(),
		Entries:         ledger.EntriesFromBill(bill, 1),
		Description:     description,
	})
	if err != nil {
		return nil, err
	}

	return &GrantResourcesResponse{Granted: bill, TransactionID: transaction.ID().String()}, nil
}

func grantBill(cmd *GrantResourcesCommand) (ledger.Bill, error) {
	var bill ledger.Bill
	for _, id := range sortedKeys(cmd.Items) {
		if cmd.Items[id] <= 0 {
			return bill, shared.NewValidationError("items", fmt.Sprintf("quantity for %s must be positive", id))
		}
		bill.AddItem(id, cmd.Items[id])
	}
	for _, kind := range sortedKeys(cmd.Currencies) {
		if cmd.Currencies[kind] <= 0 {
			return bill, shared.NewValidationError("currencies", fmt.Sprintf("amount for %s must be positive", kind))
		}
		bill.AddCurrency(catalog.Currency(kind), cmd.Currencies[kind])
	}
	if bill.IsEmpty() {
		return bill, shared.NewValidationError("grant", "nothing to grant")
	}
	return bill, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
