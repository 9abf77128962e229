package placement

import (
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Mode is the build-mode controller state
type Mode string

const (
	ModeIdle        Mode = "IDLE"
	ModePlacing     Mode = "PLACING"
	ModeDemolishing Mode = "DEMOLISHING"
)

// Session is the transient state of one placement or demolish interaction.
// Dropping it has no side effects.
type Session struct {
	definition *catalog.Definition
	rotation   float64
	cursor     shared.Vec3

	pose      building.Pose
	validated bool
	valid     bool
	reason    string

	target *building.PlacedBuilding
}

func newPlacementSession(def *catalog.Definition) *Session {
	return &Session{definition: def}
}

func (s *Session) Definition() *catalog.Definition {
	return s.definition
}

// Rotation is the accumulated rotation in degrees
func (s *Session) Rotation() float64 {
	return s.rotation
}

func (s *Session) Cursor() shared.Vec3 {
	return s.cursor
}

// Pose is the last snapped and validated pose
func (s *Session) Pose() building.Pose {
	return s.pose
}

func (s *Session) IsValid() bool {
	return s.validated && s.valid
}

func (s *Session) Reason() string {
	return s.reason
}

func (s *Session) Target() *building.PlacedBuilding {
	return s.target
}

// Preview is the read model of the controller consumed by a UI or CLI
type Preview struct {
	Mode         Mode
	DefinitionID string
	Position     shared.Vec3
	Rotation     float64
	Valid        bool
	Reason       string
	TargetID     string
}
