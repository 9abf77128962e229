package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildingCommands "github.com/andrescamacho/homestead-go/internal/application/building/commands"
	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Path = filepath.Join(t.TempDir(), "homestead.db")
	cfg.World.CatalogPath = filepath.Join("..", "..", "..", "configs", "buildings.yaml")
	cfg.Logging.Level = "error"
	return cfg
}

func TestOpen_SeedsFreshWorldAndPersistsCommands(t *testing.T) {
	// Arrange
	cfg := testConfig(t)
	app, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{SaveOnEdit: true})
	require.NoError(t, err)

	// Act
	resp, err := app.Mediator.Send(ctx, &buildingCommands.PlaceBuildingCommand{
		DefinitionID: "well",
		Position:     shared.Vec3{X: 4, Z: 4},
	})
	require.NoError(t, err)
	placed := resp.(*buildingCommands.PlaceBuildingResponse).Building
	require.NoError(t, app.Close())

	reopened, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	defer reopened.Close()

	// Assert
	assert.Regexp(t, `^well-[0-9a-f]{8}$`, placed.ID)
	assert.False(t, reopened.Host.Fresh())
	_, err = reopened.World.Building(placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, "settler", reopened.World.Player().Name)

	total, err := reopened.Mediator.Send(ctx, &ledgerQueries.GetTransactionsQuery{})
	require.NoError(t, err)
	// the starting grant and the construction debit
	assert.Equal(t, 2, total.(*ledgerQueries.GetTransactionsResponse).Total)
}

func TestOpen_UnknownCatalogFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.World.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{})

	assert.ErrorContains(t, err, "failed to read catalog")
}
