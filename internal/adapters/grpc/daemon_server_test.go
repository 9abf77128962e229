package grpc_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/grpc"
	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// serveWorld opens a world and serves it on a socket in a temp dir
func serveWorld(t *testing.T) (*bootstrap.App, *grpc.DaemonClient, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Path = filepath.Join(dir, "homestead.db")
	cfg.World.CatalogPath = filepath.Join("..", "..", "..", "configs", "buildings.yaml")
	cfg.Logging.Level = "error"
	socket := filepath.Join(dir, "daemon.sock")

	app, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	server, err := grpc.NewDaemonServer(app.Mediator, app.Logger, socket)
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- server.Serve() }()
	t.Cleanup(func() {
		server.Stop(time.Second)
		require.NoError(t, <-served)
	})

	client, err := grpc.NewDaemonClient(socket)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return app, client, socket
}

func liveBuildings(t *testing.T, host *world.Host) []string {
	t.Helper()
	var ids []string
	require.NoError(t, host.View(func(w *world.World) error {
		for _, b := range w.Buildings() {
			ids = append(ids, b.ID())
		}
		return nil
	}))
	return ids
}

func TestWorldControl_PlaceUpgradeDemolishOnLiveWorld(t *testing.T) {
	// Arrange
	app, client, _ := serveWorld(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Act
	placed, err := client.PlaceBuilding(ctx, &commands.PlaceBuildingCommand{
		DefinitionID: "house_small",
		Position:     shared.Vec3{X: 4, Z: 2},
	})
	require.NoError(t, err)
	_, upgradeErr := client.UpgradeBuilding(ctx, &commands.UpgradeBuildingCommand{BuildingID: placed.Building.ID})
	demolished, err := client.DemolishBuilding(ctx, &commands.DemolishBuildingCommand{BuildingID: placed.Building.ID})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "house_small", placed.Building.DefinitionID)
	assert.Equal(t, "CONSTRUCTING", placed.Building.Status)
	assert.Equal(t, 10, placed.Cost.ItemQuantity("wood"))
	assert.ErrorContains(t, upgradeErr, "Under construction")
	assert.Equal(t, placed.Building.ID, demolished.BuildingID)
	assert.Equal(t, 5, demolished.Refund.ItemQuantity("wood"))
	assert.Empty(t, liveBuildings(t, app.Host))
}

func TestWorldControl_DomainErrorsKeepTheirMessage(t *testing.T) {
	// Arrange
	app, client, _ := serveWorld(t)
	ctx := context.Background()
	_, err := client.PlaceBuilding(ctx, &commands.PlaceBuildingCommand{DefinitionID: "house_small"})
	require.NoError(t, err)

	// Act
	_, blocked := client.PlaceBuilding(ctx, &commands.PlaceBuildingCommand{DefinitionID: "house_small", Position: shared.Vec3{X: 1, Z: 1}})
	_, unknown := client.PlaceBuilding(ctx, &commands.PlaceBuildingCommand{DefinitionID: "castle"})
	_, missing := client.TakeFromStorage(ctx, &commands.TakeFromStorageCommand{BuildingID: "nowhere", ItemID: "plank", Quantity: 1})

	// Assert
	assert.ErrorContains(t, blocked, "Blocked by obstacle")
	assert.ErrorContains(t, unknown, "castle")
	assert.Error(t, missing)
	assert.Len(t, liveBuildings(t, app.Host), 1)
}

func TestWorldControl_StatusAndSend(t *testing.T) {
	// Arrange
	app, client, _ := serveWorld(t)
	ctx := context.Background()
	require.NoError(t, app.Host.Mutate(ctx, func(w *world.World) error {
		_, err := w.Place("wood_shed", shared.Vec3{X: -6}, 0)
		return err
	}))

	// Act
	resp, err := client.Send(ctx, &queries.GetWorldStatusQuery{})
	_, unsupported := client.Send(ctx, &commands.AdvanceWorldCommand{Duration: 1})

	// Assert
	require.NoError(t, err)
	status, ok := resp.(*queries.GetWorldStatusResponse)
	require.True(t, ok)
	assert.Equal(t, 1, status.Buildings)
	assert.Equal(t, 1, status.ByStatus["CONSTRUCTING"])
	assert.ErrorContains(t, unsupported, "is not served by the daemon")
}

func TestDaemonServer_StopRemovesSocket(t *testing.T) {
	// Arrange
	socket := filepath.Join(t.TempDir(), "daemon.sock")
	server, err := grpc.NewDaemonServer(nil, nil, socket)
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- server.Serve() }()
	require.FileExists(t, socket)

	// Act
	server.Stop(time.Second)

	// Assert
	assert.NoError(t, <-served)
	assert.NoFileExists(t, socket)
}
