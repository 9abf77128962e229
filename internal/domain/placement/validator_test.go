package placement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func houseSmall() *catalog.Definition {
	return &catalog.Definition{
		ID:        "house_small",
		Name:      "Small House",
		Category:  catalog.CategoryHousing,
		Footprint: catalog.Footprint{Width: 2, Depth: 2, Height: 3},
		Cost: catalog.Cost{
			Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 10, ReturnOnDemolish: true}},
			Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 50}},
		},
		BuildTime:  30,
		Demolition: catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: 0.5},
	}
}

func indexWith(t *testing.T, obstacles ...placement.Obstacle) *placement.SpatialIndex {
	t.Helper()
	idx := placement.NewSpatialIndex()
	for _, o := range obstacles {
		require.NoError(t, idx.Insert(o))
	}
	return idx
}

func houseAt(x, z, rot float64) placement.Obstacle {
	pose := building.Pose{Position: shared.NewVec3(x, 0, z), Rotation: rot}
	return placement.Obstacle{ID: "existing", Layer: placement.LayerBuildings, Box: placement.FootprintBox(houseSmall(), pose, 1)}
}

func TestValidator_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		obstacle placement.Obstacle
		x, z     float64
		rotation float64
		want     bool
	}{
		{name: "empty world", want: true, x: 0, z: 0},
		{name: "same spot", obstacle: houseAt(0, 0, 0), want: false},
		{name: "partial overlap", obstacle: houseAt(1, 1, 0), want: false},
		{name: "touching faces", obstacle: houseAt(2, 0, 0), want: true},
		{name: "rotated corner reaches in", obstacle: houseAt(2.3, 0, 45), want: false},
		{name: "rotated far away", obstacle: houseAt(3, 0, 45), want: true},
	}

	v := placement.NewValidator(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			idx := placement.NewSpatialIndex()
			if tt.obstacle.ID != "" {
				require.NoError(t, idx.Insert(tt.obstacle))
			}

			// Act
			res := v.Validate(houseSmall(), shared.NewVec3(tt.x, 0, tt.z), tt.rotation, placement.WorldSnapshot{Spatial: idx})

			// Assert
			assert.Equal(t, tt.want, res.Valid)
			if !tt.want {
				assert.Equal(t, placement.ReasonBlocked, res.Reason)
			}
		})
	}
}

func TestValidator_StaticObstaclesAndMargin(t *testing.T) {
	rock := placement.Obstacle{
		ID:    "rock",
		Layer: placement.LayerStatic,
		Box:   placement.OrientedBox{Center: shared.NewVec3(1.5, 0.5, 0), HalfExtents: shared.NewVec3(0.4, 0.5, 0.4)},
	}
	snap := placement.WorldSnapshot{Spatial: indexWith(t, rock)}

	// footprint spans x in [-1, 1]; the rock starts at 1.1
	assert.True(t, placement.NewValidator(1).Validate(houseSmall(), shared.Vec3{}, 0, snap).Valid)

	res := placement.NewValidator(1.2).Validate(houseSmall(), shared.Vec3{}, 0, snap)
	assert.False(t, res.Valid)
	assert.Equal(t, placement.ReasonBlocked, res.Reason)
}

func TestValidator_VerticalSeparation(t *testing.T) {
	cloud := placement.Obstacle{
		ID:    "cloud",
		Layer: placement.LayerStatic,
		Box:   placement.OrientedBox{Center: shared.NewVec3(0, 4, 0), HalfExtents: shared.NewVec3(5, 1, 5)},
	}

	res := placement.NewValidator(1).Validate(houseSmall(), shared.Vec3{}, 0, placement.WorldSnapshot{Spatial: indexWith(t, cloud)})

	assert.True(t, res.Valid)
}

func TestValidator_MinDistance(t *testing.T) {
	def := houseSmall()
	def.Requirements.MinDistanceFromOthers = 5
	placed := []placement.PlacedRef{{ID: "well", Position: shared.NewVec3(0, 0, 10)}}

	tests := []struct {
		name string
		z    float64
		want bool
	}{
		{name: "exactly at minimum", z: 5, want: false},
		{name: "inside minimum", z: 7, want: false},
		{name: "beyond minimum", z: 4, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := placement.NewValidator(1).Validate(def, shared.NewVec3(0, 0, tt.z), 0, placement.WorldSnapshot{Placed: placed})

			assert.Equal(t, tt.want, res.Valid)
			if !tt.want {
				assert.Equal(t, placement.ReasonTooClose, res.Reason)
			}
		})
	}
}

func TestValidator_OrderAndRules(t *testing.T) {
	// Arrange
	def := houseSmall()
	def.Requirements.MinDistanceFromOthers = 50
	calls := 0
	rule := placement.RuleFunc(func(def *catalog.Definition, pose building.Pose, snap placement.WorldSnapshot) (bool, string) {
		calls++
		return false, "Needs flat ground"
	})
	v := placement.NewValidator(1, rule)
	snap := placement.WorldSnapshot{
		Spatial: indexWith(t, houseAt(0, 0, 0)),
		Placed:  []placement.PlacedRef{{ID: "existing"}},
	}

	// Act
	blocked := v.Validate(def, shared.Vec3{}, 0, snap)
	hooked := v.Validate(houseSmall(), shared.NewVec3(10, 0, 0), 90, placement.WorldSnapshot{})

	// Assert
	assert.Equal(t, placement.ReasonBlocked, blocked.Reason)
	assert.Equal(t, "Needs flat ground", hooked.Reason)
	assert.Equal(t, 1, calls)
	assert.Equal(t, shared.NewVec3(10, 0, 0), hooked.Position)
	assert.Equal(t, 90.0, hooked.Rotation)
}

func TestValidator_Deterministic(t *testing.T) {
	v := placement.NewValidator(1)
	snap := placement.WorldSnapshot{Spatial: indexWith(t, houseAt(1, 0, 30))}

	first := v.Validate(houseSmall(), shared.NewVec3(0, 0, 0), 15, snap)
	second := v.Validate(houseSmall(), shared.NewVec3(0, 0, 0), 15, snap)

	assert.Equal(t, first, second)
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, shared.NewVec3(2, 0.7, -1), placement.SnapToGrid(shared.NewVec3(1.6, 0.7, -1.4), 1))
	assert.Equal(t, shared.NewVec3(4, 0, 2), placement.SnapToGrid(shared.NewVec3(3.1, 0, 2.9), 2))
	assert.Equal(t, 270.0, placement.NormalizeAngle(-90))
	assert.Equal(t, 90.0, placement.SnapAngle(100, 45))
}

func TestSpatialIndex(t *testing.T) {
	idx := indexWith(t, houseAt(0, 0, 0))

	assert.Error(t, idx.Insert(houseAt(5, 5, 0)))

	o, ok := idx.ObstacleAt(shared.NewVec3(0.5, 0, -0.5), placement.LayerBuildings)
	require.True(t, ok)
	assert.Equal(t, "existing", o.ID)

	_, ok = idx.ObstacleAt(shared.NewVec3(0.5, 0, -0.5), placement.LayerStatic)
	assert.False(t, ok)

	assert.True(t, idx.Remove("existing"))
	assert.False(t, idx.Remove("existing"))
	assert.Equal(t, 0, idx.Len())
}
