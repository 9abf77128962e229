package world

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Options configure a new World. Nil fields get defaults.
type Options struct {
	Catalog       catalog.Catalog
	Clock         shared.Clock
	Bus           *events.Bus
	SafetyMargin  float64
	RotationSpeed float64
	Rules         []placement.Rule
	NewID         placement.IDGenerator
}

// World is the live simulation: the placed buildings, the player's inventory and
// progression, and the build-mode controller. It is driven from a single goroutine.
type World struct {
	catalog    catalog.Catalog
	clock      shared.Clock
	bus        *events.Bus
	inventory  *ledger.Inventory
	player     *player.Player
	index      *placement.SpatialIndex
	registry   *building.Registry
	controller *placement.Controller

	tick    uint64
	elapsed float64
}

// New creates an empty world
func New(opts Options) *World {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus()
	}

	w := &World{
		catalog:   opts.Catalog,
		clock:     opts.Clock,
		bus:       opts.Bus,
		inventory: ledger.NewInventory(),
		player:    player.NewPlayer(player.DefaultPlayerID, "player"),
		index:     placement.NewSpatialIndex(),
		registry:  building.NewRegistry(),
	}
	w.controller = placement.NewController(placement.ControllerDeps{
		Catalog:       opts.Catalog,
		Ledger:        w.inventory,
		Progress:      w.player,
		Sink:          w.bus,
		Validator:     placement.NewValidator(opts.SafetyMargin, opts.Rules...),
		Index:         w.index,
		Registry:      w.registry,
		Clock:         opts.Clock,
		NewID:         opts.NewID,
		RotationSpeed: opts.RotationSpeed,
	})
	return w
}

func (w *World) Catalog() catalog.Catalog {
	return w.catalog
}

func (w *World) Clock() shared.Clock {
	return w.clock
}

func (w *World) Bus() *events.Bus {
	return w.bus
}

func (w *World) Inventory() *ledger.Inventory {
	return w.inventory
}

func (w *World) Player() *player.Player {
	return w.player
}

func (w *World) Controller() *placement.Controller {
	return w.controller
}

func (w *World) TickCount() uint64 {
	return w.tick
}

// Elapsed is the simulated time in seconds since the world was created
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Buildings returns the placed buildings in creation order
func (w *World) Buildings() []*building.PlacedBuilding {
	return w.registry.All()
}

// Building looks up a placed building by id
func (w *World) Building(id string) (*building.PlacedBuilding, error) {
	b, ok := w.registry.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("building", id)
	}
	return b, nil
}

// AddStaticObstacle registers terrain, trees and other non-building volumes
func (w *World) AddStaticObstacle(id string, box placement.OrientedBox) error {
	return w.index.Insert(placement.Obstacle{ID: id, Layer: placement.LayerStatic, Box: box})
}

// Tick runs one controller update followed by one update of every building in creation order
func (w *World) Tick(dt float64) {
	w.controller.Update(dt)

	env := building.TickEnv{Ledger: w.inventory, Sink: w.bus}
	for _, b := range w.registry.All() {
		b.Update(dt, env)
	}

	w.tick++
	w.elapsed += dt
}

// Advance simulates total seconds as whole ticks of step seconds plus one remainder tick.
// It returns the number of ticks run.
func (w *World) Advance(total, step float64) (int, error) {
	if step <= 0 {
		return 0, fmt.Errorf("tick step must be positive, got %v", step)
	}
	if total < 0 {
		return 0, fmt.Errorf("duration cannot be negative, got %v", total)
	}

	ticks := 0
	remaining := total
	for remaining >= step {
		w.Tick(step)
		remaining -= step
		ticks++
	}
	if remaining > 1e-9 {
		w.Tick(remaining)
		ticks++
	}
	return ticks, nil
}

// Place runs a complete placement session at the given cursor and rotation steps
func (w *World) Place(definitionID string, cursor shared.Vec3, rotationSteps int) (*building.PlacedBuilding, error) {
	c := w.controller
	if err := c.BeginPlacement(definitionID); err != nil {
		return nil, err
	}
	c.SetCursor(cursor)
	if err := c.RotateStep(rotationSteps); err != nil {
		c.Cancel()
		return nil, err
	}
	c.Update(0)

	b, err := c.Commit()
	if err != nil {
		c.Cancel()
		return nil, err
	}
	return b, nil
}

// Upgrade starts the upgrade of a building to its next tier
func (w *World) Upgrade(id string) error {
	b, err := w.Building(id)
	if err != nil {
		return err
	}
	if err := b.Upgrade(w.inventory, w.bus); err != nil {
		w.notify(err)
		return err
	}
	return nil
}

// Demolish removes a building and credits its refund
func (w *World) Demolish(id string) (ledger.Bill, error) {
	refund, err := w.controller.DemolishByID(id)
	if err != nil {
		w.notify(err)
		return ledger.Bill{}, err
	}
	return refund, nil
}

// TakeFromStorage moves items from a building's storage to the inventory
func (w *World) TakeFromStorage(id, itemID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, shared.NewValidationError("quantity", "quantity must be positive")
	}
	b, err := w.Building(id)
	if err != nil {
		return 0, err
	}
	return b.TakeFromStorage(itemID, quantity, w.inventory, w.bus), nil
}

func (w *World) notify(err error) {
	w.bus.Publish(building.Notification{Reason: err.Error()})
}
