package daemon_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/daemon"
	"github.com/andrescamacho/homestead-go/internal/adapters/grpc"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Path = filepath.Join(dir, "homestead.db")
	cfg.World.CatalogPath = filepath.Join("..", "..", "..", "configs", "buildings.yaml")
	cfg.Logging.Level = "error"
	cfg.Daemon.TickRate = 200
	cfg.Daemon.TickStep = 0.5
	cfg.Daemon.AutosaveEvery = 20 * time.Millisecond
	cfg.Daemon.SnapshotPath = filepath.Join(dir, "world.snap")
	cfg.Metrics.Enabled = false
	return cfg
}

func tickCount(host *world.Host) uint64 {
	var n uint64
	_ = host.View(func(w *world.World) error {
		n = w.TickCount()
		return nil
	})
	return n
}

func TestServer_TicksAndSavesOnShutdown(t *testing.T) {
	// Arrange
	cfg := testConfig(t)
	app, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Host.Mutate(ctx, func(w *world.World) error {
		_, err := w.Place("wood_shed", shared.Vec3{X: 3, Z: 3}, 0)
		return err
	}))

	snapshots := snapshot.NewFileRepository(cfg.Daemon.SnapshotPath, app.Codec)
	server := daemon.NewServer(app.Host, snapshots, cfg.Daemon, cfg.Metrics)

	// Act
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(ctx) }()

	require.Eventually(t, func() bool { return tickCount(app.Host) >= 10 }, 5*time.Second, 10*time.Millisecond)
	server.Shutdown()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// Assert
	<-server.Done()
	saved, err := snapshot.ReadFile(cfg.Daemon.SnapshotPath)
	require.NoError(t, err)
	assert.Len(t, saved.Buildings, 1)

	reopened, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer reopened.Close()
	var elapsed float64
	_ = app.Host.View(func(w *world.World) error {
		elapsed = w.Elapsed()
		return nil
	})
	assert.InDelta(t, elapsed, reopened.World.Elapsed(), 1e-9)
	require.Len(t, reopened.World.Buildings(), 1)
	assert.True(t, reopened.World.Buildings()[0].IsActive())
}

func TestServer_StopsWhenContextCancelled(t *testing.T) {
	// Arrange
	cfg := testConfig(t)
	cfg.Daemon.AutosaveEvery = time.Hour
	app, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer app.Close()

	server := daemon.NewServer(app.Host, nil, cfg.Daemon, cfg.Metrics)
	ctx, cancel := context.WithCancel(ctx)

	// Act
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(ctx) }()
	require.Eventually(t, func() bool { return tickCount(app.Host) > 0 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	// Assert
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-server.Done()
}

func TestServer_LiveEditsThroughControlAreSaved(t *testing.T) {
	// Arrange
	cfg := testConfig(t)
	cfg.Daemon.AutosaveEvery = time.Hour
	socket := filepath.Join(t.TempDir(), "daemon.sock")
	app, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer app.Close()

	control, err := grpc.NewDaemonServer(app.Mediator, app.Logger, socket)
	require.NoError(t, err)
	server := daemon.NewServer(app.Host, nil, cfg.Daemon, cfg.Metrics).WithControl(control)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(ctx) }()
	require.Eventually(t, func() bool { return tickCount(app.Host) > 0 }, 5*time.Second, 10*time.Millisecond)

	client, err := grpc.NewDaemonClient(socket)
	require.NoError(t, err)
	defer client.Close()

	// Act
	placed, err := client.PlaceBuilding(context.Background(), &commands.PlaceBuildingCommand{
		DefinitionID: "wood_shed",
		Position:     shared.Vec3{X: -6},
	})
	require.NoError(t, err)
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// Assert
	assert.NoFileExists(t, socket)
	reopened, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer reopened.Close()
	require.Len(t, reopened.World.Buildings(), 1)
	assert.Equal(t, placed.Building.ID, reopened.World.Buildings()[0].ID())
}
