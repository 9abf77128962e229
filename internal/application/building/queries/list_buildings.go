package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
)

// ListBuildingsQuery lists placed buildings in creation order with optional filters
type ListBuildingsQuery struct {
	DefinitionID string // Optional
	Status       string // Optional: CONSTRUCTING or ACTIVE
}

// ListBuildingsResponse represents the matching buildings
type ListBuildingsResponse struct {
	Buildings []*dtos.BuildingDTO
}

// ListBuildingsHandler handles the ListBuildings query
type ListBuildingsHandler struct {
	host *world.Host
}

// NewListBuildingsHandler creates a new ListBuildingsHandler
func NewListBuildingsHandler(host *world.Host) *ListBuildingsHandler {
	return &ListBuildingsHandler{host: host}
}

// Handle executes the ListBuildings query
func (h *ListBuildingsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListBuildingsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListBuildingsQuery")
	}

	var status building.Status
	if query.Status != "" {
		parsed, err := building.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	resp := &ListBuildingsResponse{}
	err := h.host.View(func(w *world.World) error {
		for _, b := range w.Buildings() {
			if query.DefinitionID != "" && b.Definition().ID != query.DefinitionID {
				continue
			}
			if status != "" && b.Status() != status {
				continue
			}
			resp.Buildings = append(resp.Buildings, dtos.ToBuildingDTO(b, w.Inventory()))
		}
		return nil
	})
	return resp, err
}
