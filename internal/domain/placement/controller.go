package placement

import (
	"fmt"
	"math"

	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// DefaultRotationSpeed is the continuous rotation rate in degrees per second
const DefaultRotationSpeed = 90.0

// IDGenerator creates the id of a new building from its definition id
type IDGenerator func(definitionID string) string

// ControllerDeps are the collaborators of a Controller. Nil optional fields get defaults.
type ControllerDeps struct {
	Catalog  catalog.Catalog
	Ledger   ledger.ResourceLedger
	Progress player.Progress

	Sink          building.EventSink
	Validator     *Validator
	Index         *SpatialIndex
	Registry      *building.Registry
	Clock         shared.Clock
	NewID         IDGenerator
	RotationSpeed float64
}

// Controller is the build-mode state machine: IDLE → PLACING → IDLE (commit or cancel)
// and IDLE → DEMOLISHING → IDLE. It owns every change to the set of placed buildings.
type Controller struct {
	catalog   catalog.Catalog
	ledger    ledger.ResourceLedger
	progress  player.Progress
	sink      building.EventSink
	validator *Validator
	index     *SpatialIndex
	registry  *building.Registry
	clock     shared.Clock
	newID     IDGenerator

	rotationSpeed float64
	rotationAxis  float64
	cursor        shared.Vec3

	mode    Mode
	session *Session
	seq     int
}

// NewController wires a controller in IDLE mode
func NewController(deps ControllerDeps) *Controller {
	c := &Controller{
		catalog:       deps.Catalog,
		ledger:        deps.Ledger,
		progress:      deps.Progress,
		sink:          deps.Sink,
		validator:     deps.Validator,
		index:         deps.Index,
		registry:      deps.Registry,
		clock:         deps.Clock,
		newID:         deps.NewID,
		rotationSpeed: deps.RotationSpeed,
		mode:          ModeIdle,
	}
	if c.sink == nil {
		c.sink = building.NopSink{}
	}
	if c.validator == nil {
		c.validator = NewValidator(1)
	}
	if c.index == nil {
		c.index = NewSpatialIndex()
	}
	if c.registry == nil {
		c.registry = building.NewRegistry()
	}
	if c.clock == nil {
		c.clock = shared.NewRealClock()
	}
	if c.newID == nil {
		c.newID = c.sequentialID
	}
	if c.rotationSpeed <= 0 {
		c.rotationSpeed = DefaultRotationSpeed
	}
	return c
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// Session returns the open session, nil in IDLE mode
func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) Registry() *building.Registry {
	return c.registry
}

func (c *Controller) Index() *SpatialIndex {
	return c.index
}

// Snapshot is the world state the validator runs against
func (c *Controller) Snapshot() WorldSnapshot {
	all := c.registry.All()
	placed := make([]PlacedRef, 0, len(all))
	for _, b := range all {
		placed = append(placed, PlacedRef{ID: b.ID(), Position: b.Position()})
	}
	return WorldSnapshot{Spatial: c.index, Placed: placed}
}

// BeginPlacement opens a placement session for a definition. An open session is cancelled
// first. Unknown definitions and unmet requirements fail without opening a session.
func (c *Controller) BeginPlacement(definitionID string) error {
	if c.mode != ModeIdle {
		c.Cancel()
	}

	def, err := c.catalog.GetDefinition(definitionID)
	if err != nil {
		c.notify(err.Error())
		return err
	}
	if err := c.checkRequirements(def); err != nil {
		c.notify(err.Reason)
		return err
	}

	c.session = newPlacementSession(def)
	c.rotationAxis = 0
	c.mode = ModePlacing
	return nil
}

func (c *Controller) checkRequirements(def *catalog.Definition) *UnavailableError {
	req := def.Requirements
	if req.MinLevel > 0 && (c.progress == nil || c.progress.CurrentLevel() < req.MinLevel) {
		return NewUnavailableError(def.ID, fmt.Sprintf("Requires level %d", req.MinLevel))
	}
	if req.RequiredQuest != "" && (c.progress == nil || !c.progress.HasCompletedQuest(req.RequiredQuest)) {
		return NewUnavailableError(def.ID, fmt.Sprintf("Requires quest %s", req.RequiredQuest))
	}
	return nil
}

// SetCursor moves the raw pointer position used by the next Update
func (c *Controller) SetCursor(p shared.Vec3) {
	c.cursor = p
	if c.session != nil {
		c.session.validated = false
	}
}

// RotateStep rotates the preview by whole snap angles of the selected definition
func (c *Controller) RotateStep(steps int) error {
	if c.mode != ModePlacing {
		return NewModeError(c.mode, "rotate")
	}
	s := c.session
	s.rotation = NormalizeAngle(s.rotation + float64(steps)*s.definition.SnapAngle())
	s.validated = false
	return nil
}

// SetRotationAxis sets the continuous rotation input in [-1, 1], integrated by Update
func (c *Controller) SetRotationAxis(axis float64) {
	c.rotationAxis = math.Max(-1, math.Min(1, axis))
}

// Update runs once per tick: in PLACING it applies continuous rotation, snaps the cursor
// and re-validates; in DEMOLISHING it resolves the building under the cursor.
func (c *Controller) Update(dt float64) {
	switch c.mode {
	case ModePlacing:
		if c.rotationAxis != 0 && dt > 0 {
			c.session.rotation = NormalizeAngle(c.session.rotation + c.rotationAxis*c.rotationSpeed*dt)
		}
		c.revalidate()
	case ModeDemolishing:
		c.resolveTarget()
	}
}

func (c *Controller) revalidate() {
	s := c.session
	def := s.definition
	position := SnapToGrid(c.cursor, def.CellSize())
	res := c.validator.Validate(def, position, s.rotation, c.Snapshot())

	s.cursor = c.cursor
	s.pose = building.Pose{Position: res.Position, Rotation: res.Rotation}
	s.validated = true
	s.valid = res.Valid
	s.reason = res.Reason
}

// Commit validates the current pose, debits the base cost all-or-nothing and creates the
// building in CONSTRUCTING state. On failure the session stays open and nothing changes.
func (c *Controller) Commit() (*building.PlacedBuilding, error) {
	if c.mode != ModePlacing {
		err := NewModeError(c.mode, "commit")
		c.notify(err.Error())
		return nil, err
	}

	c.revalidate()
	s := c.session
	if !s.valid {
		c.notify(s.reason)
		return nil, NewInvalidPlacementError(s.reason)
	}

	def := s.definition
	bill := ledger.BillFromCost(def.CostForTier(0))
	if err := ledger.ConsumeResources(c.ledger, bill); err != nil {
		c.notify(err.Error())
		return nil, err
	}

	b, err := building.NewPlacedBuilding(c.newID(def.ID), def, s.pose, c.clock)
	if err == nil {
		err = c.Register(b)
	}
	if err != nil {
		ledger.CreditResources(c.ledger, bill)
		c.notify(err.Error())
		return nil, err
	}

	c.sink.Publish(building.BuildingPlaced{BuildingID: b.ID(), DefinitionID: def.ID, Pose: b.Pose(), Cost: bill})
	c.session = nil
	c.mode = ModeIdle
	return b, nil
}

// Register adds a building to the live set and the spatial index
func (c *Controller) Register(b *building.PlacedBuilding) error {
	if err := c.registry.Add(b); err != nil {
		return err
	}
	box := FootprintBox(b.Definition(), b.Pose(), 1)
	if err := c.index.Insert(Obstacle{ID: b.ID(), Layer: LayerBuildings, Box: box}); err != nil {
		c.registry.Remove(b.ID())
		return err
	}
	return nil
}

// BeginDemolish switches to DEMOLISHING, cancelling an open placement
func (c *Controller) BeginDemolish() {
	if c.mode != ModeIdle {
		c.Cancel()
	}
	c.session = &Session{}
	c.mode = ModeDemolishing
}

func (c *Controller) resolveTarget() {
	c.session.cursor = c.cursor
	c.session.target = nil
	if o, ok := c.index.ObstacleAt(c.cursor, LayerBuildings); ok {
		if b, found := c.registry.Get(o.ID); found {
			c.session.target = b
		}
	}
}

// ConfirmDemolish demolishes the building under the cursor. Errors leave the mode unchanged.
func (c *Controller) ConfirmDemolish() (ledger.Bill, error) {
	if c.mode != ModeDemolishing {
		err := NewModeError(c.mode, "demolish")
		c.notify(err.Error())
		return ledger.Bill{}, err
	}

	c.resolveTarget()
	target := c.session.target
	if target == nil {
		err := NewNoTargetError()
		c.notify(err.Error())
		return ledger.Bill{}, err
	}

	refund, err := c.DemolishBuilding(target)
	if err != nil {
		c.notify(err.Error())
		return ledger.Bill{}, err
	}

	c.session = nil
	c.mode = ModeIdle
	return refund, nil
}

// DemolishByID demolishes a building without going through the cursor
func (c *Controller) DemolishByID(id string) (ledger.Bill, error) {
	b, ok := c.registry.Get(id)
	if !ok {
		return ledger.Bill{}, shared.NewNotFoundError("building", id)
	}
	return c.DemolishBuilding(b)
}

// DemolishBuilding credits the refund and marks the building DEMOLISHED, then
// unlinks it from the registry and the spatial index. A failed demolish leaves
// the world untouched, so there is nothing to roll back.
func (c *Controller) DemolishBuilding(b *building.PlacedBuilding) (ledger.Bill, error) {
	if !b.CanDemolish() {
		return ledger.Bill{}, building.NewNotDemolishableError(b.ID())
	}

	refund, err := b.Demolish(c.ledger, c.sink)
	if err != nil {
		return ledger.Bill{}, err
	}

	c.registry.Remove(b.ID())
	c.index.Remove(b.ID())
	return refund, nil
}

// Unregister drops a building from the live set and the spatial index
func (c *Controller) Unregister(id string) {
	c.registry.Remove(id)
	c.index.Remove(id)
}

// Cancel drops the open session and returns to IDLE with no side effects
func (c *Controller) Cancel() {
	c.session = nil
	c.rotationAxis = 0
	c.mode = ModeIdle
}

// Preview describes the live session state
func (c *Controller) Preview() Preview {
	p := Preview{Mode: c.mode}
	s := c.session
	if s == nil {
		return p
	}
	if s.definition != nil {
		p.DefinitionID = s.definition.ID
		p.Position = s.pose.Position
		p.Rotation = s.rotation
		p.Valid = s.IsValid()
		p.Reason = s.reason
	}
	if s.target != nil {
		p.TargetID = s.target.ID()
	}
	return p
}

func (c *Controller) notify(reason string) {
	c.sink.Publish(building.Notification{Reason: reason})
}

func (c *Controller) sequentialID(definitionID string) string {
	c.seq++
	return fmt.Sprintf("%s-%08x", definitionID, c.seq)
}
