package world

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
)

// Host serializes access to a live world and persists it through a Repository.
// Command handlers run their work inside Mutate or View; the daemon tick loop does the same.
type Host struct {
	mu         sync.Mutex
	world      *World
	repo       Repository
	saveOnEdit bool
	fresh      bool
}

// NewHost wraps a world. With saveOnEdit set every successful Mutate is persisted
// immediately, which is what one-shot CLI invocations want.
func NewHost(w *World, repo Repository, saveOnEdit bool) *Host {
	return &Host{world: w, repo: repo, saveOnEdit: saveOnEdit}
}

// Load restores the world from the repository. A repository with no saved state leaves the world empty.
func (h *Host) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.repo == nil {
		h.fresh = true
		return nil
	}
	state, err := h.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load world: %w", err)
	}
	if state == nil {
		h.fresh = true
		logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "No saved world found, starting fresh", nil)
		return nil
	}
	if err := h.world.Restore(state); err != nil {
		return err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "World loaded", map[string]interface{}{
		"buildings": len(h.world.Buildings()),
		"tick":      h.world.TickCount(),
	})
	return nil
}

// Fresh reports whether the last Load found no saved world
func (h *Host) Fresh() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fresh
}

// View runs fn with exclusive access and never saves
func (h *Host) View(fn func(w *World) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.world)
}

// Mutate runs fn with exclusive access. The world is saved after a successful fn when
// the host saves on edit. A failed fn is not saved, but any state it changed before
// failing stays in memory.
func (h *Host) Mutate(ctx context.Context, fn func(w *World) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := fn(h.world); err != nil {
		return err
	}
	if h.saveOnEdit {
		return h.saveLocked(ctx)
	}
	return nil
}

// Save persists the world
func (h *Host) Save(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.saveLocked(ctx)
}

func (h *Host) saveLocked(ctx context.Context) error {
	if h.repo == nil {
		return nil
	}
	if err := h.repo.Save(ctx, h.world.State()); err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}
