package placement

import (
	"math"

	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// overlapEpsilon absorbs float noise so that touching faces never count as overlap
const overlapEpsilon = 1e-9

// OrientedBox is a box rotated around the vertical axis by Yaw degrees
type OrientedBox struct {
	Center      shared.Vec3
	HalfExtents shared.Vec3
	Yaw         float64
}

// FootprintBox is the bounding volume of a definition at a pose, scaled by margin.
// The pose position is the center of the footprint at ground level.
func FootprintBox(def *catalog.Definition, pose building.Pose, margin float64) OrientedBox {
	if margin <= 0 {
		margin = 1
	}
	cell := def.CellSize()
	half := shared.NewVec3(
		float64(def.Footprint.Width)*cell/2,
		def.Footprint.Height/2,
		float64(def.Footprint.Depth)*cell/2,
	)
	return OrientedBox{
		Center:      pose.Position.Add(shared.NewVec3(0, half.Y, 0)),
		HalfExtents: half.Scale(margin),
		Yaw:         pose.Rotation,
	}
}

// axes returns the box's local X and Z directions on the XZ plane
func (b OrientedBox) axes() (ux, uz [2]float64) {
	rad := b.Yaw * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return [2]float64{c, s}, [2]float64{-s, c}
}

// radiusOn is the half length of the box projected onto axis
func (b OrientedBox) radiusOn(axis [2]float64) float64 {
	ux, uz := b.axes()
	return b.HalfExtents.X*math.Abs(dot(ux, axis)) + b.HalfExtents.Z*math.Abs(dot(uz, axis))
}

// Overlaps reports whether the boxes share a strictly positive volume.
// Uses the separating axis test on the XZ plane plus the vertical interval.
func (b OrientedBox) Overlaps(o OrientedBox) bool {
	if math.Abs(b.Center.Y-o.Center.Y) >= b.HalfExtents.Y+o.HalfExtents.Y-overlapEpsilon {
		return false
	}

	d := [2]float64{o.Center.X - b.Center.X, o.Center.Z - b.Center.Z}
	bx, bz := b.axes()
	ox, oz := o.axes()
	for _, axis := range [][2]float64{bx, bz, ox, oz} {
		if math.Abs(dot(d, axis)) >= b.radiusOn(axis)+o.radiusOn(axis)-overlapEpsilon {
			return false
		}
	}
	return true
}

// ContainsXZ reports whether the point lies inside the box's ground rectangle
func (b OrientedBox) ContainsXZ(p shared.Vec3) bool {
	d := [2]float64{p.X - b.Center.X, p.Z - b.Center.Z}
	ux, uz := b.axes()
	return math.Abs(dot(d, ux)) <= b.HalfExtents.X && math.Abs(dot(d, uz)) <= b.HalfExtents.Z
}

func dot(a, b [2]float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}
