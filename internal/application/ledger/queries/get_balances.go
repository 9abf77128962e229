package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// GetBalancesQuery reads the current inventory
type GetBalancesQuery struct{}

// BalanceDTO is the held quantity of one resource
type BalanceDTO struct {
	Resource string
	Quantity int
}

// GetBalancesResponse lists item and currency balances sorted by resource
type GetBalancesResponse struct {
	Items      []BalanceDTO
	Currencies []BalanceDTO
}

// GetBalancesHandler handles the GetBalances query
type GetBalancesHandler struct {
	host *world.Host
}

// NewGetBalancesHandler creates a new GetBalancesHandler
func NewGetBalancesHandler(host *world.Host) *GetBalancesHandler {
	return &GetBalancesHandler{host: host}
}

// Handle executes the GetBalances query
func (h *GetBalancesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetBalancesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBalancesQuery")
	}

	resp := &GetBalancesResponse{}
	err := h.host.View(func(w *world.World) error {
		inv := w.Inventory()
		for _, id := range inv.ItemIDs() {
			resp.Items = append(resp.Items, BalanceDTO{Resource: id, Quantity: inv.ItemCount(id)})
		}
		for _, kind := range inv.CurrencyKinds() {
			resp.Currencies = append(resp.Currencies, BalanceDTO{Resource: string(kind), Quantity: inv.CurrencyBalance(kind)})
		}
		return nil
	})
	return resp, err
}
