package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// GetBuildingQuery fetches one placed building
type GetBuildingQuery struct {
	BuildingID string
}

// GetBuildingResponse represents the building
type GetBuildingResponse struct {
	Building *dtos.BuildingDTO
}

// GetBuildingHandler handles the GetBuilding query
type GetBuildingHandler struct {
	host *world.Host
}

// NewGetBuildingHandler creates a new GetBuildingHandler
func NewGetBuildingHandler(host *world.Host) *GetBuildingHandler {
	return &GetBuildingHandler{host: host}
}

// Handle executes the GetBuilding query
func (h *GetBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBuildingQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBuildingQuery")
	}

	var resp *GetBuildingResponse
	err := h.host.View(func(w *world.World) error {
		b, err := w.Building(query.BuildingID)
		if err != nil {
			return err
		}
		resp = &GetBuildingResponse{Building: dtos.ToBuildingDTO(b, w.Inventory())}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
