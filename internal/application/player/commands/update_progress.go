package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
)

// SetLevelCommand changes the player level used by building requirements
type SetLevelCommand struct {
	Level int
}

// CompleteQuestCommand marks a quest as completed
type CompleteQuestCommand struct {
	QuestID string
}

// UpdateProgressResponse represents the player after the change
type UpdateProgressResponse struct {
	Player *player.Player
}

// UpdateProgressHandler handles SetLevel and CompleteQuest
type UpdateProgressHandler struct {
	host *world.Host
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler
func NewUpdateProgressHandler(host *world.Host) *UpdateProgressHandler {
	return &UpdateProgressHandler{host: host}
}

// Handle executes SetLevel or CompleteQuest
func (h *UpdateProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var apply func(p *player.Player) error
	switch cmd := request.(type) {
	case *SetLevelCommand:
		apply = func(p *player.Player) error { return p.SetLevel(cmd.Level) }
	case *CompleteQuestCommand:
		apply = func(p *player.Player) error { return p.CompleteQuest(cmd.QuestID) }
	default:
		return nil, fmt.Errorf("invalid request type: expected *SetLevelCommand or *CompleteQuestCommand")
	}

	var snapshot player.Player
	err := h.host.Mutate(ctx, func(w *world.World) error {
		if err := apply(w.Player()); err != nil {
			return err
		}
		snapshot = *w.Player()
		snapshot.CompletedQuests = append([]string(nil), w.Player().CompletedQuests...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Player progress updated", map[string]interface{}{
		"level":  snapshot.Level,
		"quests": snapshot.CompletedQuests,
	})
	return &UpdateProgressResponse{Player: &snapshot}, nil
}
