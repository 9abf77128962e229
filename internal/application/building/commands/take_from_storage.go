package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// TakeFromStorageCommand moves items from a building's storage into the inventory
type TakeFromStorageCommand struct {
	BuildingID string
	ItemID     string
	Quantity   int
}

// TakeFromStorageResponse reports how many items were moved, which may be fewer than requested
type TakeFromStorageResponse struct {
	Moved     int
	Remaining int
}

// TakeFromStorageHandler handles the TakeFromStorage command
type TakeFromStorageHandler struct {
	host *world.Host
}

// NewTakeFromStorageHandler creates a new TakeFromStorageHandler
func NewTakeFromStorageHandler(host *world.Host) *TakeFromStorageHandler {
	return &TakeFromStorageHandler{host: host}
}

// Handle executes the TakeFromStorage command
func (h *TakeFromStorageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TakeFromStorageCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TakeFromStorageCommand")
	}

	resp := &TakeFromStorageResponse{}
	err := h.host.Mutate(ctx, func(w *world.World) error {
		moved, err := w.TakeFromStorage(cmd.BuildingID, cmd.ItemID, cmd.Quantity)
		if err != nil {
			return err
		}
		b, _ := w.Building(cmd.BuildingID)
		resp.Moved = moved
		resp.Remaining = b.StoredQuantity(cmd.ItemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
