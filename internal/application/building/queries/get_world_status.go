package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
)

// GetWorldStatusQuery summarizes the live world
type GetWorldStatusQuery struct {
	RecentEvents int // Number of recent events to include, 0 for none
}

// GetWorldStatusResponse is the world summary
type GetWorldStatusResponse struct {
	TickCount    uint64
	Elapsed      float64
	Buildings    int
	ByStatus     map[string]int
	Mode         string
	PlayerLevel  int
	RecentEvents []string
}

// GetWorldStatusHandler handles the GetWorldStatus query
type GetWorldStatusHandler struct {
	host    *world.Host
	history *events.History
}

// NewGetWorldStatusHandler creates a handler. history may be nil.
func NewGetWorldStatusHandler(host *world.Host, history *events.History) *GetWorldStatusHandler {
	return &GetWorldStatusHandler{host: host, history: history}
}

// Handle executes the GetWorldStatus query
func (h *GetWorldStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetWorldStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWorldStatusQuery")
	}

	resp := &GetWorldStatusResponse{ByStatus: make(map[string]int)}
	err := h.host.View(func(w *world.World) error {
		resp.TickCount = w.TickCount()
		resp.Elapsed = w.Elapsed()
		resp.Mode = string(w.Controller().Mode())
		resp.PlayerLevel = w.Player().CurrentLevel()
		for _, b := range w.Buildings() {
			resp.Buildings++
			resp.ByStatus[string(b.Status())]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.history != nil && query.RecentEvents > 0 {
		for _, e := range h.history.Recent(query.RecentEvents) {
			resp.RecentEvents = append(resp.RecentEvents, describe(e))
		}
	}
	return resp, nil
}

func describe(e building.Event) string {
	switch ev := e.(type) {
	case building.Notification:
		return fmt.Sprintf("%s: %s", ev.EventName(), ev.Reason)
	case building.BuildingPlaced:
		return fmt.Sprintf("%s: %s (%s)", ev.EventName(), ev.BuildingID, ev.DefinitionID)
	case building.BuildingDemolished:
		return fmt.Sprintf("%s: %s refund %s", ev.EventName(), ev.BuildingID, ev.Refund)
	case building.BuildingUpgraded:
		return fmt.Sprintf("%s: %s tier %d", ev.EventName(), ev.BuildingID, ev.Tier)
	case building.ConstructionCompleted:
		return fmt.Sprintf("%s: %s tier %d", ev.EventName(), ev.BuildingID, ev.Tier)
	case building.ProductionOutput:
		return fmt.Sprintf("%s: %s +%d %s", ev.EventName(), ev.BuildingID, ev.Quantity, ev.ItemID)
	case building.StorageFull:
		return fmt.Sprintf("%s: %s dropped %d %s", ev.EventName(), ev.BuildingID, ev.Quantity, ev.ItemID)
	case building.StorageWithdrawn:
		return fmt.Sprintf("%s: %s -%d %s", ev.EventName(), ev.BuildingID, ev.Quantity, ev.ItemID)
	}
	return e.EventName()
}
