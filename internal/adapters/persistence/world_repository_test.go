package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(world.Options{
		Catalog: helpers.NewTestCatalog(t),
		Clock:   shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestWorldRepository_LoadEmpty(t *testing.T) {
	w := newTestWorld(t)
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t), snapshot.NewCodec(w.Catalog(), w.Clock()))

	state, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestWorldRepository_SaveLoadRoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	w := newTestWorld(t)
	w.Inventory().AddItem("wood", 12)
	w.Inventory().AddCurrency("gold", 90)
	_, err := w.Place("wood_shed", shared.Vec3{X: -4}, 0)
	require.NoError(t, err)
	_, err = w.Place("well", shared.Vec3{X: 6, Z: 6}, 0)
	require.NoError(t, err)
	_, err = w.Advance(7, 0.5)
	require.NoError(t, err)
	require.NoError(t, w.Player().SetLevel(3))

	codec := snapshot.NewCodec(w.Catalog(), w.Clock())
	repo := persistence.NewGormWorldRepository(helpers.NewTestDB(t), codec)

	// Act
	require.NoError(t, repo.Save(ctx, w.State()))
	// saving twice replaces rather than duplicates
	require.NoError(t, repo.Save(ctx, w.State()))
	state, err := repo.Load(ctx)
	require.NoError(t, err)
	restored := newTestWorld(t)
	require.NoError(t, restored.Restore(state))

	// Assert
	assert.Equal(t, normalized(codec.Encode(w.Buildings())), normalized(codec.Encode(restored.Buildings())))
	assert.Equal(t, w.Inventory().Snapshot(), restored.Inventory().Snapshot())
	assert.Equal(t, w.TickCount(), restored.TickCount())
	assert.Equal(t, 3, restored.Player().CurrentLevel())
}

func TestWorldRepository_LoadSkipsUnknownDefinitions(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	w := newTestWorld(t)
	repo := persistence.NewGormWorldRepository(db, snapshot.NewCodec(w.Catalog(), w.Clock()))
	require.NoError(t, repo.Save(ctx, w.State()))

	require.NoError(t, db.Create(&persistence.BuildingModel{
		ID: "ghost", Seq: 0, DefinitionID: "castle", Status: "ACTIVE", BuildProgress: 1, CreatedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&persistence.BuildingModel{
		ID: "well-1", Seq: 1, DefinitionID: "well", Status: "ACTIVE", BuildProgress: 1, CreatedAt: time.Now(),
	}).Error)

	// Act
	state, err := repo.Load(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, state.Buildings, 1)
	assert.Equal(t, "well-1", state.Buildings[0].ID())
}

// normalized drops location and monotonic details that storage does not keep
func normalized(records []snapshot.InstanceRecord) []snapshot.InstanceRecord {
	for i := range records {
		records[i].CreatedAt = records[i].CreatedAt.UTC().Round(time.Microsecond)
	}
	return records
}
