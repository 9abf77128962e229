package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// UpgradeBuildingCommand starts the construction of a building's next tier
type UpgradeBuildingCommand struct {
	BuildingID string
}

// UpgradeBuildingResponse represents the upgraded building and the tier cost
type UpgradeBuildingResponse struct {
	Building *dtos.BuildingDTO
	Cost     ledger.Bill
}

// UpgradeBuildingHandler handles the UpgradeBuilding command
type UpgradeBuildingHandler struct {
	host *world.Host
}

// NewUpgradeBuildingHandler creates a new UpgradeBuildingHandler
func NewUpgradeBuildingHandler(host *world.Host) *UpgradeBuildingHandler {
	return &UpgradeBuildingHandler{host: host}
}

// Handle executes the UpgradeBuilding command
func (h *UpgradeBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpgradeBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpgradeBuildingCommand")
	}

	var resp *UpgradeBuildingResponse
	err := h.host.Mutate(ctx, func(w *world.World) error {
		b, err := w.Building(cmd.BuildingID)
		if err != nil {
			return err
		}
		cost := b.NextTierBill()
		if err := w.Upgrade(cmd.BuildingID); err != nil {
			return err
		}
		resp = &UpgradeBuildingResponse{Building: dtos.ToBuildingDTO(b, w.Inventory()), Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Building upgrade started", map[string]interface{}{
		"building_id": cmd.BuildingID,
		"tier":        resp.Building.Tier,
		"cost":        resp.Cost.String(),
	})
	return resp, nil
}
