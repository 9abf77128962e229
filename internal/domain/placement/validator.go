package placement

import (
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Rejection reasons surfaced to the player
const (
	ReasonBlocked  = "Blocked by obstacle"
	ReasonTooClose = "Too close to another building"
)

// PlacedRef is the part of a placed building the distance rule looks at
type PlacedRef struct {
	ID       string
	Position shared.Vec3
}

// WorldSnapshot is the world state a validation runs against
type WorldSnapshot struct {
	Spatial SpatialWorld
	Placed  []PlacedRef
}

// Result is the outcome of one validation. On success Position and Rotation echo the input.
type Result struct {
	Valid    bool
	Reason   string
	Position shared.Vec3
	Rotation float64
}

// Rule is an optional placement policy evaluated after the built-in checks.
// Terrain flatness, indoor/outdoor and water proximity plug in here.
type Rule interface {
	Check(def *catalog.Definition, pose building.Pose, snapshot WorldSnapshot) (ok bool, reason string)
}

// RuleFunc adapts a function to Rule
type RuleFunc func(def *catalog.Definition, pose building.Pose, snapshot WorldSnapshot) (bool, string)

func (f RuleFunc) Check(def *catalog.Definition, pose building.Pose, snapshot WorldSnapshot) (bool, string) {
	return f(def, pose, snapshot)
}

// Validator decides whether a definition fits at an already snapped pose.
// It has no side effects and returns the same result for the same inputs.
type Validator struct {
	safetyMargin float64
	rules        []Rule
}

// NewValidator creates a validator; a non-positive margin means 1.0
func NewValidator(safetyMargin float64, rules ...Rule) *Validator {
	if safetyMargin <= 0 {
		safetyMargin = 1
	}
	return &Validator{safetyMargin: safetyMargin, rules: rules}
}

func (v *Validator) SafetyMargin() float64 {
	return v.safetyMargin
}

// Validate runs the checks in order and stops at the first failure:
// footprint overlap, minimum distance to placed buildings, then the registered rules.
func (v *Validator) Validate(def *catalog.Definition, position shared.Vec3, rotation float64, snapshot WorldSnapshot) Result {
	pose := building.Pose{Position: position, Rotation: rotation}
	reject := func(reason string) Result {
		return Result{Valid: false, Reason: reason, Position: position, Rotation: rotation}
	}

	if snapshot.Spatial != nil {
		box := FootprintBox(def, pose, v.safetyMargin)
		if len(snapshot.Spatial.OverlapQuery(box, LayerAll)) > 0 {
			return reject(ReasonBlocked)
		}
	}

	if minDist := def.Requirements.MinDistanceFromOthers; minDist > 0 {
		for _, placed := range snapshot.Placed {
			if position.DistanceTo(placed.Position) <= minDist {
				return reject(ReasonTooClose)
			}
		}
	}

	for _, rule := range v.rules {
		if ok, reason := rule.Check(def, pose, snapshot); !ok {
			return reject(reason)
		}
	}

	return Result{Valid: true, Position: position, Rotation: rotation}
}
