package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
)

// GetPlayerQuery reads the world's player
type GetPlayerQuery struct{}

// GetPlayerResponse represents a copy of the player
type GetPlayerResponse struct {
	Player *player.Player
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	host *world.Host
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(host *world.Host) *GetPlayerHandler {
	return &GetPlayerHandler{host: host}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetPlayerQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	var copied player.Player
	err := h.host.View(func(w *world.World) error {
		copied = *w.Player()
		copied.CompletedQuests = append([]string(nil), w.Player().CompletedQuests...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GetPlayerResponse{Player: &copied}, nil
}
