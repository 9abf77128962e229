package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// DefaultTickStep is the simulated seconds per tick when none is given
const DefaultTickStep = 0.1

// AdvanceWorldCommand simulates a duration in fixed ticks
type AdvanceWorldCommand struct {
	Duration float64 // Seconds
	Step     float64 // Seconds per tick, DefaultTickStep when zero
}

// AdvanceWorldResponse reports the simulation clock after advancing
type AdvanceWorldResponse struct {
	Ticks     int
	TickCount uint64
	Elapsed   float64
}

// AdvanceWorldHandler handles the AdvanceWorld command
type AdvanceWorldHandler struct {
	host *world.Host
}

// NewAdvanceWorldHandler creates a new AdvanceWorldHandler
func NewAdvanceWorldHandler(host *world.Host) *AdvanceWorldHandler {
	return &AdvanceWorldHandler{host: host}
}

// Handle executes the AdvanceWorld command
func (h *AdvanceWorldHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceWorldCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceWorldCommand")
	}

	step := cmd.Step
	if step == 0 {
		step = DefaultTickStep
	}

	resp := &AdvanceWorldResponse{}
	err := h.host.Mutate(ctx, func(w *world.World) error {
		ticks, err := w.Advance(cmd.Duration, step)
		if err != nil {
			return err
		}
		resp.Ticks = ticks
		resp.TickCount = w.TickCount()
		resp.Elapsed = w.Elapsed()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelDebug, "World advanced", map[string]interface{}{
		"ticks":   resp.Ticks,
		"elapsed": resp.Elapsed,
	})
	return resp, nil
}
