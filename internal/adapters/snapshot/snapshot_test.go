package snapshot_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(world.Options{
		Catalog: helpers.NewTestCatalog(t),
		Clock:   shared.NewMockClock(epoch),
	})
}

func TestFileRepository_SaveLoadRoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	w := newWorld(t)
	w.Inventory().AddItem("wood", 15)
	w.Inventory().AddCurrency("gold", 70)
	_, err := w.Place("wood_shed", shared.Vec3{}, 0)
	require.NoError(t, err)
	_, err = w.Place("house_small", shared.Vec3{X: 10, Z: 10}, 1)
	require.NoError(t, err)
	_, err = w.Advance(6, 1)
	require.NoError(t, err)
	require.NoError(t, w.Player().CompleteQuest("first_steps"))

	codec := snapshot.NewCodec(w.Catalog(), w.Clock())
	repo := snapshot.NewFileRepository(filepath.Join(t.TempDir(), "world.snap"), codec)

	// Act
	require.NoError(t, repo.Save(ctx, w.State()))
	state, err := repo.Load(ctx)
	require.NoError(t, err)
	restored := newWorld(t)
	require.NoError(t, restored.Restore(state))

	// Assert
	assert.Equal(t, normalized(codec.Encode(w.Buildings())), normalized(codec.Encode(restored.Buildings())))
	assert.Equal(t, w.Inventory().Snapshot(), restored.Inventory().Snapshot())
	assert.Equal(t, w.TickCount(), restored.TickCount())
	assert.InDelta(t, w.Elapsed(), restored.Elapsed(), 1e-9)
	assert.True(t, restored.Player().HasCompletedQuest("first_steps"))
}

func TestFileRepository_LoadMissingFile(t *testing.T) {
	repo := snapshot.NewFileRepository(filepath.Join(t.TempDir(), "none.snap"), snapshot.NewCodec(helpers.NewTestCatalog(t), nil))

	state, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestCodec_DecodeSkipsUnknownDefinitions(t *testing.T) {
	// Arrange
	codec := snapshot.NewCodec(helpers.NewTestCatalog(t), shared.NewMockClock(epoch))
	records := []snapshot.InstanceRecord{
		{ID: "b-1", DefinitionID: "castle", Status: "ACTIVE", BuildProgress: 1},
		{ID: "b-2", DefinitionID: "well", Status: "ACTIVE", BuildProgress: 1},
	}

	// Act
	buildings, errs := codec.Decode(context.Background(), records)

	// Assert
	require.Len(t, buildings, 1)
	assert.Equal(t, "b-2", buildings[0].ID())
	require.Len(t, errs, 1)
	assert.Equal(t, "castle", errs[0].DefinitionID)

	var loadErr *snapshot.LoadError
	assert.True(t, errors.As(errs[0], &loadErr))
	assert.Contains(t, loadErr.Error(), "unknown building definition: castle")
}

func TestCodec_DecodeClampsTierAndRemapsSlots(t *testing.T) {
	// Arrange
	codec := snapshot.NewCodec(helpers.NewTestCatalog(t), shared.NewMockClock(epoch))
	records := []snapshot.InstanceRecord{{
		ID:            "shed",
		DefinitionID:  "wood_shed",
		Tier:          7,
		Status:        "ACTIVE",
		BuildProgress: 1,
		Storage: []snapshot.SlotRecord{
			{Slot: 9, ItemID: "plank", Quantity: 4},
			{Slot: 0, ItemID: "plank", Quantity: 2},
			{Slot: 1, ItemID: "resin", Quantity: 1},
		},
	}}

	// Act
	buildings, errs := codec.Decode(context.Background(), records)

	// Assert
	require.Empty(t, errs)
	require.Len(t, buildings, 1)
	shed := buildings[0]
	assert.Equal(t, 1, shed.Tier())
	assert.Equal(t, 2, shed.SlotCapacity())
	assert.Equal(t, 2.0, shed.ProductionMultiplier())
	// slot 9 does not exist: remapped to the first empty slot, the rest overflows
	assert.Equal(t, []building.Slot{{ItemID: "plank", Quantity: 4}, {ItemID: "plank", Quantity: 2}}, shed.Slots())
	assert.Equal(t, 0, shed.StoredQuantity("resin"))
}

func TestReadFile_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.snap")
	require.NoError(t, snapshot.WriteFile(path, snapshot.Snapshot{Header: snapshot.Header{Version: 99}}))

	_, err := snapshot.ReadFile(path)

	assert.ErrorContains(t, err, "unsupported snapshot version 99")
}

// normalized drops location and monotonic details that storage does not keep
func normalized(records []snapshot.InstanceRecord) []snapshot.InstanceRecord {
	for i := range records {
		records[i].CreatedAt = records[i].CreatedAt.UTC().Round(time.Microsecond)
	}
	return records
}
