package setup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildingCommands "github.com/andrescamacho/homestead-go/internal/application/building/commands"
	buildingQueries "github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/events"
	ledgerCommands "github.com/andrescamacho/homestead-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/homestead-go/internal/application/player/commands"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

type app struct {
	mediator mediator.Mediator
	repo     *helpers.MockTransactionRepository
	ctx      context.Context
}

func newApp(t *testing.T, defs ...*catalog.Definition) *app {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	cat := helpers.NewTestCatalog(t, defs...)
	bus := events.NewBus()
	history := events.NewHistory(10)
	bus.Subscribe(history.Record)

	w := world.New(world.Options{Catalog: cat, Clock: clock, Bus: bus})
	host := world.NewHost(w, nil, false)
	repo := helpers.NewMockTransactionRepository()

	registry := setup.NewHandlerRegistry(host, cat, repo, history, clock)
	m, err := registry.CreateConfiguredMediator(logging.RequestLoggingMiddleware())
	require.NoError(t, err)

	ctx := context.Background()
	ledgerCommands.NewJournal(ctx, m).Attach(bus)
	return &app{mediator: m, repo: repo, ctx: ctx}
}

func (a *app) send(t *testing.T, request mediator.Request) mediator.Response {
	t.Helper()
	resp, err := a.mediator.Send(a.ctx, request)
	require.NoError(t, err)
	return resp
}

func TestBuildingLifecycleThroughMediator(t *testing.T) {
	// Arrange
	a := newApp(t)
	a.send(t, &ledgerCommands.GrantResourcesCommand{
		Items:      map[string]int{"wood": 30},
		Currencies: map[string]int{"gold": 130},
	})

	// Act: place
	placed := a.send(t, &buildingCommands.PlaceBuildingCommand{
		DefinitionID: "house_small",
		Position:     shared.NewVec3(3.4, 0, -0.6),
	}).(*buildingCommands.PlaceBuildingResponse)

	// Assert
	assert.Equal(t, [3]float64{3, 0, -1}, placed.Building.Position)
	assert.Equal(t, "CONSTRUCTING", placed.Building.Status)
	assert.Equal(t, "{wood:10, gold:50}", placed.Cost.String())
	assert.Equal(t, "cannot upgrade "+placed.Building.ID+": Under construction", placed.Building.UpgradeBlocker)

	// Act: finish construction, then upgrade
	a.send(t, &buildingCommands.AdvanceWorldCommand{Duration: 5, Step: 1})
	upgraded := a.send(t, &buildingCommands.UpgradeBuildingCommand{BuildingID: placed.Building.ID}).(*buildingCommands.UpgradeBuildingResponse)

	// Assert
	assert.Equal(t, 1, upgraded.Building.Tier)
	assert.Equal(t, "CONSTRUCTING", upgraded.Building.Status)
	assert.Equal(t, "{wood:20, gold:80}", upgraded.Cost.String())

	balances := a.send(t, &ledgerQueries.GetBalancesQuery{}).(*ledgerQueries.GetBalancesResponse)
	assert.Empty(t, balances.Items)
	assert.Empty(t, balances.Currencies)

	// Act: demolish at tier 1
	demolished := a.send(t, &buildingCommands.DemolishBuildingCommand{BuildingID: placed.Building.ID}).(*buildingCommands.DemolishBuildingResponse)

	// Assert: only the base wood line is flagged for return; gold uses the uniform 50%
	assert.Equal(t, "{wood:5, gold:65}", demolished.Refund.String())

	listed := a.send(t, &buildingQueries.ListBuildingsQuery{}).(*buildingQueries.ListBuildingsResponse)
	assert.Empty(t, listed.Buildings)

	txs := a.send(t, &ledgerQueries.GetTransactionsQuery{OrderBy: "timestamp ASC"}).(*ledgerQueries.GetTransactionsResponse)
	assert.Equal(t, 4, txs.Total)
	var types []string
	for _, tx := range txs.Transactions {
		types = append(types, tx.Type)
	}
	assert.ElementsMatch(t, []string{"GRANT", "PLACE_BUILDING", "UPGRADE_BUILDING", "DEMOLISH_REFUND"}, types)
}

func TestPlaceBuilding_RejectionsLeaveWorldUnchanged(t *testing.T) {
	// Arrange
	a := newApp(t)
	a.send(t, &ledgerCommands.GrantResourcesCommand{Items: map[string]int{"wood": 5}, Currencies: map[string]int{"gold": 50}})

	// Act
	_, err := a.mediator.Send(a.ctx, &buildingCommands.PlaceBuildingCommand{DefinitionID: "house_small"})

	// Assert
	var insufficient *ledger.InsufficientResourcesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "InsufficientResources: wood (5/10)", err.Error())

	status := a.send(t, &buildingQueries.GetWorldStatusQuery{RecentEvents: 1}).(*buildingQueries.GetWorldStatusResponse)
	assert.Equal(t, 0, status.Buildings)
	assert.Equal(t, string(placement.ModeIdle), status.Mode)
	assert.Equal(t, []string{"notification: InsufficientResources: wood (5/10)"}, status.RecentEvents)
}

func TestPlaceBuilding_RequirementGating(t *testing.T) {
	// Arrange
	gated := helpers.HouseSmall()
	gated.ID = "manor"
	gated.Requirements.MinLevel = 3
	a := newApp(t, gated)
	a.send(t, &ledgerCommands.GrantResourcesCommand{Items: map[string]int{"wood": 10}, Currencies: map[string]int{"gold": 50}})

	// Act
	_, err := a.mediator.Send(a.ctx, &buildingCommands.PlaceBuildingCommand{DefinitionID: "manor"})
	a.send(t, &playerCommands.SetLevelCommand{Level: 3})
	placed, retryErr := a.mediator.Send(a.ctx, &buildingCommands.PlaceBuildingCommand{DefinitionID: "manor"})

	// Assert
	var unavailable *placement.UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "Requires level 3", unavailable.Reason)
	require.NoError(t, retryErr)
	assert.Equal(t, "manor", placed.(*buildingCommands.PlaceBuildingResponse).Building.DefinitionID)
}

func TestTakeFromStorageAndCatalogQueries(t *testing.T) {
	// Arrange
	a := newApp(t)
	a.send(t, &ledgerCommands.GrantResourcesCommand{Items: map[string]int{"wood": 5}})
	placed := a.send(t, &buildingCommands.PlaceBuildingCommand{DefinitionID: "wood_shed"}).(*buildingCommands.PlaceBuildingResponse)
	a.send(t, &buildingCommands.AdvanceWorldCommand{Duration: 6, Step: 1})

	// Act
	taken := a.send(t, &buildingCommands.TakeFromStorageCommand{BuildingID: placed.Building.ID, ItemID: "plank", Quantity: 1}).(*buildingCommands.TakeFromStorageResponse)
	defs := a.send(t, &buildingQueries.ListDefinitionsQuery{Category: "utility"}).(*buildingQueries.ListDefinitionsResponse)
	_, unknownErr := a.mediator.Send(a.ctx, &buildingQueries.GetDefinitionQuery{ID: "wel"})

	// Assert
	assert.Equal(t, 1, taken.Moved)
	assert.Equal(t, 1, taken.Remaining)
	require.Len(t, defs.Definitions, 1)
	assert.Equal(t, "well", defs.Definitions[0].ID)
	assert.Equal(t, "water", defs.Definitions[0].Produces)
	assert.ErrorContains(t, unknownErr, "did you mean well?")

	_, err := a.mediator.Send(a.ctx, &buildingCommands.TakeFromStorageCommand{BuildingID: placed.Building.ID, ItemID: "plank"})
	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))
}

var _ building.Event = building.Notification{}
