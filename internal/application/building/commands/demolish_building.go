package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// DemolishBuildingCommand removes a building and credits its refund
type DemolishBuildingCommand struct {
	BuildingID string
}

// DemolishBuildingResponse reports the credited refund
type DemolishBuildingResponse struct {
	BuildingID string
	Refund     ledger.Bill
}

// DemolishBuildingHandler handles the DemolishBuilding command
type DemolishBuildingHandler struct {
	host *world.Host
}

// NewDemolishBuildingHandler creates a new DemolishBuildingHandler
func NewDemolishBuildingHandler(host *world.Host) *DemolishBuildingHandler {
	return &DemolishBuildingHandler{host: host}
}

// Handle executes the DemolishBuilding command
func (h *DemolishBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DemolishBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DemolishBuildingCommand")
	}

	var refund ledger.Bill
	err := h.host.Mutate(ctx, func(w *world.World) error {
		var err error
		refund, err = w.Demolish(cmd.BuildingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Building demolished", map[string]interface{}{
		"building_id": cmd.BuildingID,
		"refund":      refund.String(),
	})
	return &DemolishBuildingResponse{BuildingID: cmd.BuildingID, Refund: refund}, nil
}
