package world

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
)

// State is the persisted part of a world. Controller sessions are never saved.
type State struct {
	Tick      uint64
	Elapsed   float64
	Buildings []*building.PlacedBuilding
	Balances  ledger.Balances
	Player    *player.Player
}

// Repository loads and saves world state
type Repository interface {
	// Load returns nil state and nil error when nothing was saved yet
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}

// State captures the current world for persistence
func (w *World) State() *State {
	p := *w.player
	p.CompletedQuests = append([]string(nil), w.player.CompletedQuests...)
	return &State{
		Tick:      w.tick,
		Elapsed:   w.elapsed,
		Buildings: w.registry.All(),
		Balances:  w.inventory.Snapshot(),
		Player:    &p,
	}
}

// Restore replaces the world content with a loaded state. Only valid on a world
// without placed buildings. On error the world is left as it was.
func (w *World) Restore(state *State) error {
	if w.registry.Len() > 0 {
		return fmt.Errorf("cannot restore into a world with %d placed buildings", w.registry.Len())
	}
	if state == nil {
		return nil
	}

	w.controller.Cancel()
	restored := make([]string, 0, len(state.Buildings))
	for _, b := range state.Buildings {
		if b.IsDemolished() {
			continue
		}
		if err := w.controller.Register(b); err != nil {
			for _, id := range restored {
				w.controller.Unregister(id)
			}
			return fmt.Errorf("failed to restore building %s: %w", b.ID(), err)
		}
		restored = append(restored, b.ID())
	}

	w.inventory.Restore(state.Balances)
	if state.Player != nil {
		*w.player = *state.Player
		w.player.CompletedQuests = append([]string(nil), state.Player.CompletedQuests...)
	}
	w.tick = state.Tick
	w.elapsed = state.Elapsed
	return nil
}
