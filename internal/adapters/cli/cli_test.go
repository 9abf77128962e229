package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/grpc"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// writeConfig points a config file at a temp database and the repository catalog
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	catalogPath, err := filepath.Abs(filepath.Join("..", "..", "..", "configs", "buildings.yaml"))
	require.NoError(t, err)
	pidPath := filepath.Join(dir, "daemon.pid")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
database:
  type: sqlite
  path: %s
logging:
  level: error
world:
  catalog_path: %s
daemon:
  pid_file: %s
  socket_path: %s
`, filepath.Join(dir, "world.db"), catalogPath, pidPath, filepath.Join(dir, "daemon.sock"))), 0o644))
	return path, pidPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func reopen(t *testing.T, cfgPath string) *bootstrap.App {
	t.Helper()
	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	app, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestCLI_PlaceTickAndGrantPersist(t *testing.T) {
	// Arrange
	cfgPath, _ := writeConfig(t)

	// Act
	require.NoError(t, run(t, "--config", cfgPath, "build", "place", "house_small", "--x", "4", "--z", "2"))
	require.NoError(t, run(t, "--config", cfgPath, "world", "tick", "--seconds", "60"))
	require.NoError(t, run(t, "--config", cfgPath, "ledger", "grant", "--items", "stone=7"))

	// Assert
	app := reopen(t, cfgPath)
	buildings := app.World.Buildings()
	require.Len(t, buildings, 1)
	assert.Equal(t, "house_small", buildings[0].Definition().ID)
	assert.True(t, buildings[0].IsActive())
	assert.Equal(t, 27, app.World.Inventory().ItemCount("stone"))
}

func TestCLI_RejectedPlacementReturnsError(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	err := run(t, "--config", cfgPath, "build", "place", "castle")

	assert.ErrorContains(t, err, "castle")
}

func TestCLI_RefusesMutationWhileDaemonRuns(t *testing.T) {
	// Arrange
	cfgPath, pidPath := writeConfig(t)
	require.NoError(t, os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o644))

	// Act
	err := run(t, "--config", cfgPath, "player", "set-level", "4")
	readErr := run(t, "--config", cfgPath, "build", "list")

	// Assert
	assert.ErrorContains(t, err, "owned by the running daemon")
	assert.NoError(t, readErr)
}

func TestCLI_EditsLiveWorldThroughDaemon(t *testing.T) {
	// Arrange
	cfgPath, pidPath := writeConfig(t)
	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	live, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer live.Close()

	control, err := grpc.NewDaemonServer(live.Mediator, live.Logger, cfg.Daemon.SocketPath)
	require.NoError(t, err)
	go func() { _ = control.Serve() }()
	defer control.Stop(time.Second)
	require.NoError(t, os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o644))

	// Act
	placeErr := run(t, "--config", cfgPath, "build", "place", "wood_shed", "--x=-6")
	statusErr := run(t, "--config", cfgPath, "world", "status")
	refused := run(t, "--config", cfgPath, "player", "set-level", "4")

	// Assert
	require.NoError(t, placeErr)
	assert.NoError(t, statusErr)
	assert.ErrorContains(t, refused, "owned by the running daemon")

	var placed int
	require.NoError(t, live.Host.View(func(w *world.World) error {
		placed = len(w.Buildings())
		return nil
	}))
	assert.Equal(t, 1, placed)

	// The daemon saves on its own schedule; the edit is not written behind its back
	require.NoError(t, os.Remove(pidPath))
	assert.Empty(t, reopen(t, cfgPath).World.Buildings())
}

func TestCLI_ExportImportRoundTrip(t *testing.T) {
	// Arrange
	source, _ := writeConfig(t)
	target, _ := writeConfig(t)
	snapPath := filepath.Join(t.TempDir(), "world.snap")
	require.NoError(t, run(t, "--config", source, "build", "place", "wood_shed", "--x=-6"))
	require.NoError(t, run(t, "--config", source, "player", "complete-quest", "first_steps"))

	// Act
	require.NoError(t, run(t, "--config", source, "world", "export", snapPath))
	require.NoError(t, run(t, "--config", target, "world", "import", snapPath))

	// Assert
	app := reopen(t, target)
	require.Len(t, app.World.Buildings(), 1)
	assert.Equal(t, "wood_shed", app.World.Buildings()[0].Definition().ID)
	assert.True(t, app.World.Player().HasCompletedQuest("first_steps"))
}
