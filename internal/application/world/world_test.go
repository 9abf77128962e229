package world_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func newWorld(t *testing.T) (*world.World, *[]string) {
	t.Helper()
	bus := events.NewBus()
	var names []string
	bus.Subscribe(func(e building.Event) { names = append(names, e.EventName()) })

	w := world.New(world.Options{
		Catalog: helpers.NewTestCatalog(t),
		Clock:   shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Bus:     bus,
	})
	return w, &names
}

func TestWorld_ConstructionProductionAndWithdrawal(t *testing.T) {
	// Arrange
	w, names := newWorld(t)
	w.Inventory().AddItem("wood", 5)
	shed, err := w.Place("wood_shed", shared.Vec3{}, 0)
	require.NoError(t, err)

	// Act
	_, err = w.Advance(2, 1)
	require.NoError(t, err)
	_, err = w.Advance(4, 1)
	require.NoError(t, err)
	moved, err := w.TakeFromStorage(shed.ID(), "plank", 5)

	// Assert
	require.NoError(t, err)
	assert.True(t, shed.IsActive())
	assert.Equal(t, 2, moved)
	assert.Equal(t, 2, w.Inventory().ItemCount("plank"))
	assert.Equal(t, 0, shed.StoredQuantity("plank"))
	assert.Equal(t, []string{
		building.EventBuildingPlaced,
		building.EventConstructionCompleted,
		building.EventProductionOutput,
		building.EventStorageWithdrawn,
	}, *names)
	assert.Equal(t, uint64(6), w.TickCount())
}

func TestWorld_AdvanceRunsRemainderTick(t *testing.T) {
	w, _ := newWorld(t)

	ticks, err := w.Advance(5, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, ticks)
	assert.InDelta(t, 5.0, w.Elapsed(), 1e-9)

	_, err = w.Advance(1, 0)
	assert.Error(t, err)
}

func TestWorld_DemolishRefundsAndRemoves(t *testing.T) {
	// Arrange
	w, _ := newWorld(t)
	w.Inventory().AddItem("wood", 10)
	w.Inventory().AddCurrency("gold", 50)
	house, err := w.Place("house_small", shared.NewVec3(4, 0, 4), 1)
	require.NoError(t, err)
	assert.Equal(t, 90.0, house.Rotation())

	// Act
	refund, err := w.Demolish(house.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "{wood:5, gold:25}", refund.String())
	assert.Equal(t, 5, w.Inventory().ItemCount("wood"))
	assert.Equal(t, 25, w.Inventory().CurrencyBalance("gold"))
	assert.Empty(t, w.Buildings())

	_, err = w.Building(house.ID())
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestWorld_DemolishForbiddenNotifies(t *testing.T) {
	// Arrange
	w, names := newWorld(t)
	w.Inventory().AddCurrency("gold", 20)
	well, err := w.Place("well", shared.Vec3{}, 0)
	require.NoError(t, err)

	// Act
	_, err = w.Demolish(well.ID())

	// Assert
	var forbidden *building.NotDemolishableError
	require.True(t, errors.As(err, &forbidden))
	assert.Len(t, w.Buildings(), 1)
	assert.Equal(t, building.EventNotification, (*names)[len(*names)-1])
}

func TestWorld_UpgradeUnknownBuilding(t *testing.T) {
	w, _ := newWorld(t)

	err := w.Upgrade("nope")

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestWorld_RestoreOccupiesSpace(t *testing.T) {
	// Arrange
	source, _ := newWorld(t)
	source.Inventory().AddItem("wood", 10)
	source.Inventory().AddCurrency("gold", 100)
	_, err := source.Place("house_small", shared.Vec3{}, 0)
	require.NoError(t, err)
	require.NoError(t, source.Player().SetLevel(3))
	state := source.State()

	target, _ := newWorld(t)

	// Act
	require.NoError(t, target.Restore(state))
	_, err = target.Place("house_small", shared.NewVec3(1, 0, 0), 0)

	// Assert
	assert.Len(t, target.Buildings(), 1)
	assert.Equal(t, 50, target.Inventory().CurrencyBalance("gold"))
	assert.Equal(t, 3, target.Player().CurrentLevel())
	var invalid *placement.InvalidPlacementError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, placement.ReasonBlocked, invalid.Reason)
	assert.Equal(t, placement.ModeIdle, target.Controller().Mode())

	assert.Error(t, target.Restore(state))
}

func TestWorld_RestoreFailureLeavesWorldEmpty(t *testing.T) {
	// Arrange
	source, _ := newWorld(t)
	source.Inventory().AddItem("wood", 10)
	source.Inventory().AddCurrency("gold", 100)
	house, err := source.Place("house_small", shared.Vec3{}, 0)
	require.NoError(t, err)
	state := source.State()
	state.Buildings = append(state.Buildings, house)

	target, _ := newWorld(t)

	// Act
	err = target.Restore(state)

	// Assert
	assert.ErrorContains(t, err, "failed to restore building "+house.ID())
	assert.Empty(t, target.Buildings())
	assert.Equal(t, 0, target.Controller().Index().Len())
	assert.Equal(t, 0, target.Inventory().CurrencyBalance("gold"))
	require.NoError(t, target.Restore(source.State()))
	assert.Len(t, target.Buildings(), 1)
}

type memoryRepository struct {
	saved *world.State
	saves int
}

func (r *memoryRepository) Load(ctx context.Context) (*world.State, error) {
	return r.saved, nil
}

func (r *memoryRepository) Save(ctx context.Context, state *world.State) error {
	r.saved = state
	r.saves++
	return nil
}

func TestHost_MutateSavesOnlySuccessfulEdits(t *testing.T) {
	// Arrange
	w, _ := newWorld(t)
	repo := &memoryRepository{}
	host := world.NewHost(w, repo, true)
	ctx := context.Background()

	// Act
	err := host.Mutate(ctx, func(w *world.World) error {
		w.Inventory().AddItem("wood", 3)
		return nil
	})
	require.NoError(t, err)
	failed := host.Mutate(ctx, func(w *world.World) error {
		return errors.New("boom")
	})

	// Assert
	assert.EqualError(t, failed, "boom")
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 3, repo.saved.Balances.Items["wood"])

	reloaded, _ := newWorld(t)
	require.NoError(t, world.NewHost(reloaded, repo, false).Load(ctx))
	assert.Equal(t, 3, reloaded.Inventory().ItemCount("wood"))
}

func TestHost_LoadReportsFreshWorld(t *testing.T) {
	// Arrange
	w, _ := newWorld(t)
	repo := &memoryRepository{}
	host := world.NewHost(w, repo, false)
	ctx := context.Background()

	// Act
	require.NoError(t, host.Load(ctx))
	fresh := host.Fresh()
	require.NoError(t, host.Save(ctx))
	reloaded, _ := newWorld(t)
	second := world.NewHost(reloaded, repo, false)
	require.NoError(t, second.Load(ctx))

	// Assert
	assert.True(t, fresh)
	assert.False(t, second.Fresh())
}
