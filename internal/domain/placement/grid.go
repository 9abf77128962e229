package placement

import (
	"math"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// SnapToGrid rounds X and Z to the nearest multiple of cell. Y is kept.
func SnapToGrid(p shared.Vec3, cell float64) shared.Vec3 {
	if cell <= 0 {
		return p
	}
	return shared.NewVec3(
		math.Round(p.X/cell)*cell,
		p.Y,
		math.Round(p.Z/cell)*cell,
	)
}

// NormalizeAngle maps degrees into [0, 360)
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SnapAngle rounds degrees to the nearest multiple of step and normalizes the result
func SnapAngle(deg, step float64) float64 {
	if step <= 0 {
		return NormalizeAngle(deg)
	}
	return NormalizeAngle(math.Round(deg/step) * step)
}
