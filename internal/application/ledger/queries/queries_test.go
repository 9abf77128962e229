package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

var day = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *helpers.MockTransactionRepository) {
	t.Helper()
	ctx := context.Background()
	add := func(offset time.Duration, tt ledger.TransactionType, buildingID string, entries ...ledger.Entry) {
		tx, err := ledger.NewTransaction(day.Add(offset), tt, buildingID, "", entries, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))
	}

	add(0, ledger.TransactionTypeGrant, "", ledger.Entry{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: 30})
	add(time.Minute, ledger.TransactionTypePlaceBuilding, "house-1",
		ledger.Entry{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: -10},
		ledger.Entry{Kind: ledger.ResourceKindCurrency, Resource: "gold", Delta: -50})
	add(2*time.Minute, ledger.TransactionTypePlaceBuilding, "house-2",
		ledger.Entry{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: -10})
	add(3*time.Minute, ledger.TransactionTypeDemolishRefund, "house-1",
		ledger.Entry{Kind: ledger.ResourceKindItem, Resource: "wood", Delta: 5})
}

func TestGetTransactions_FiltersByBuilding(t *testing.T) {
	// Arrange
	repo := helpers.NewMockTransactionRepository()
	seed(t, repo)
	handler := queries.NewGetTransactionsHandler(repo)
	buildingID := "house-1"

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{BuildingID: &buildingID})

	// Assert
	require.NoError(t, err)
	result := resp.(*queries.GetTransactionsResponse)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "DEMOLISH_REFUND", result.Transactions[0].Type)
	assert.Equal(t, "PLACE_BUILDING", result.Transactions[1].Type)
	assert.Len(t, result.Transactions[1].Entries, 2)
}

func TestGetTransactions_RejectsUnknownCategory(t *testing.T) {
	handler := queries.NewGetTransactionsHandler(helpers.NewMockTransactionRepository())
	category := "TRADING"

	_, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{Category: &category})

	assert.ErrorContains(t, err, "invalid category")
}

func TestGetResourceFlow_GroupsByCategory(t *testing.T) {
	// Arrange
	repo := helpers.NewMockTransactionRepository()
	seed(t, repo)
	handler := queries.NewGetResourceFlowHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetResourceFlowQuery{
		StartDate: day.Add(-time.Hour),
		EndDate:   day.Add(time.Hour),
	})

	// Assert
	require.NoError(t, err)
	flows := resp.(*queries.GetResourceFlowResponse).Flows
	require.Len(t, flows, 4)
	assert.Equal(t, queries.ResourceFlow{Group: "ADJUSTMENT", Resource: "wood", Inflow: 30, Net: 30, Transactions: 1}, *flows[0])
	assert.Equal(t, queries.ResourceFlow{Group: "CONSTRUCTION", Resource: "gold", Outflow: 50, Net: -50, Transactions: 1}, *flows[1])
	assert.Equal(t, queries.ResourceFlow{Group: "CONSTRUCTION", Resource: "wood", Outflow: 20, Net: -20, Transactions: 2}, *flows[2])
	assert.Equal(t, queries.ResourceFlow{Group: "REFUND", Resource: "wood", Inflow: 5, Net: 5, Transactions: 1}, *flows[3])
}

func TestGetResourceFlow_GroupsByResource(t *testing.T) {
	repo := helpers.NewMockTransactionRepository()
	seed(t, repo)
	handler := queries.NewGetResourceFlowHandler(repo)

	resp, err := handler.Handle(context.Background(), &queries.GetResourceFlowQuery{
		StartDate: day.Add(-time.Hour),
		EndDate:   day.Add(time.Hour),
		GroupBy:   "resource",
	})

	require.NoError(t, err)
	flows := resp.(*queries.GetResourceFlowResponse).Flows
	require.Len(t, flows, 2)
	assert.Equal(t, "CURRENCY", flows[0].Group)
	assert.Equal(t, queries.ResourceFlow{Group: "ITEM", Resource: "wood", Inflow: 35, Outflow: 20, Net: 15, Transactions: 4}, *flows[1])

	_, err = handler.Handle(context.Background(), &queries.GetResourceFlowQuery{GroupBy: "day"})
	assert.Error(t, err)
}

func TestGetBalances_ListsSortedResources(t *testing.T) {
	w := world.New(world.Options{Catalog: helpers.NewTestCatalog(t)})
	w.Inventory().AddItem("wood", 3)
	w.Inventory().AddItem("stone", 1)
	w.Inventory().AddCurrency("gold", 9)
	handler := queries.NewGetBalancesHandler(world.NewHost(w, nil, false))

	resp, err := handler.Handle(context.Background(), &queries.GetBalancesQuery{})

	require.NoError(t, err)
	balances := resp.(*queries.GetBalancesResponse)
	assert.Equal(t, []queries.BalanceDTO{{Resource: "stone", Quantity: 1}, {Resource: "wood", Quantity: 3}}, balances.Items)
	assert.Equal(t, []queries.BalanceDTO{{Resource: "gold", Quantity: 9}}, balances.Currencies)
}
