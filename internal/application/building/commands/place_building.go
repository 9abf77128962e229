package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// PlaceBuildingCommand runs a full placement session: select, aim, rotate, commit
type PlaceBuildingCommand struct {
	DefinitionID  string
	Position      shared.Vec3 // Cursor position; snapped to the definition grid
	RotationSteps int         // Whole snap-angle steps, negative for counter-clockwise
}

// PlaceBuildingResponse represents the placed building and what it cost
type PlaceBuildingResponse struct {
	Building *dtos.BuildingDTO
	Cost     ledger.Bill
}

// PlaceBuildingHandler handles the PlaceBuilding command
type PlaceBuildingHandler struct {
	host *world.Host
}

// NewPlaceBuildingHandler creates a new PlaceBuildingHandler
func NewPlaceBuildingHandler(host *world.Host) *PlaceBuildingHandler {
	return &PlaceBuildingHandler{host: host}
}

// Handle executes the PlaceBuilding command
func (h *PlaceBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlaceBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlaceBuildingCommand")
	}
	if cmd.DefinitionID == "" {
		return nil, fmt.Errorf("definition id is required")
	}

	var resp *PlaceBuildingResponse
	err := h.host.Mutate(ctx, func(w *world.World) error {
		b, err := w.Place(cmd.DefinitionID, cmd.Position, cmd.RotationSteps)
		if err != nil {
			return err
		}
		resp = &PlaceBuildingResponse{
			Building: dtos.ToBuildingDTO(b, w.Inventory()),
			Cost:     ledger.BillFromCost(b.Definition().CostForTier(0)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Building placed", map[string]interface{}{
		"building_id": resp.Building.ID,
		"definition":  cmd.DefinitionID,
		"position":    resp.Building.Position,
		"rotation":    resp.Building.Rotation,
		"cost":        resp.Cost.String(),
	})
	return resp, nil
}
