package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

func storehouse() *catalog.Definition {
	return &catalog.Definition{
		ID:        "storehouse",
		Name:      "Storehouse",
		Category:  catalog.CategoryStorage,
		Footprint: catalog.Footprint{Width: 2, Depth: 2, Height: 3},
		Cost: catalog.Cost{
			Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 20, ReturnOnDemolish: true, ReturnPercentage: 0.5}},
			Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 10}},
		},
		BuildTime: 10,
		Tiers: []catalog.Tier{
			{
				Name:                      "Reinforced",
				Cost:                      catalog.Cost{Items: []catalog.ItemCost{{ItemID: "stone", Quantity: 40}}},
				BuildTime:                 20,
				ExtraStorageSlots:         2,
				ProductionSpeedMultiplier: 1.5,
				QualityBonus:              0.1,
			},
			{
				Name:              "Grand",
				Cost:              catalog.Cost{Items: []catalog.ItemCost{{ItemID: "stone", Quantity: 80}}},
				BuildTime:         40,
				ExtraStorageSlots: 4,
				QualityBonus:      0.2,
			},
		},
		Functionality: catalog.Functionality{Storage: catalog.StorageSpec{Slots: 4}},
		Demolition:    catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: 0.5},
	}
}

func TestDefinition_TierIndexing(t *testing.T) {
	def := storehouse()

	assert.Equal(t, 2, def.TierCount())
	assert.Equal(t, 2, def.MaxTier())
	assert.True(t, def.IsValidTier(0))
	assert.True(t, def.IsValidTier(2))
	assert.False(t, def.IsValidTier(3))
	assert.False(t, def.IsValidTier(-1))

	assert.Equal(t, def.Cost, def.CostForTier(0))
	assert.Equal(t, 40, def.CostForTier(1).Items[0].Quantity)
	assert.Equal(t, 80, def.CostForTier(2).Items[0].Quantity)
	assert.True(t, def.CostForTier(3).IsEmpty())

	assert.Equal(t, 10.0, def.BuildTimeForTier(0))
	assert.Equal(t, 20.0, def.BuildTimeForTier(1))
	assert.Equal(t, 40.0, def.BuildTimeForTier(2))
}

func TestDefinition_DerivedCapacities(t *testing.T) {
	def := storehouse()

	assert.Equal(t, 4, def.GetTotalStorageSlots(0))
	assert.Equal(t, 6, def.GetTotalStorageSlots(1))
	assert.Equal(t, 10, def.GetTotalStorageSlots(2))

	assert.Equal(t, 1.0, def.ProductionSpeedMultiplier(0))
	assert.Equal(t, 1.5, def.ProductionSpeedMultiplier(1))
	// unset multiplier falls back to 1
	assert.Equal(t, 1.0, def.ProductionSpeedMultiplier(2))

	assert.InDelta(t, 0.3, def.QualityBonus(2), 1e-9)
}

func TestDefinition_DefaultsForGridAndRotation(t *testing.T) {
	def := storehouse()

	assert.Equal(t, catalog.DefaultGridCellSize, def.CellSize())
	assert.Equal(t, catalog.DefaultRotationSnapAngle, def.SnapAngle())

	def.GridCellSize = 2
	def.RotationSnapAngle = 45
	assert.Equal(t, 2.0, def.CellSize())
	assert.Equal(t, 45.0, def.SnapAngle())
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *catalog.Definition)
		wantErr string
	}{
		{name: "valid", mutate: func(d *catalog.Definition) {}},
		{name: "empty id", mutate: func(d *catalog.Definition) { d.ID = "" }, wantErr: "definition id cannot be empty"},
		{name: "bad category", mutate: func(d *catalog.Definition) { d.Category = "CASTLE" }, wantErr: "invalid category"},
		{name: "zero footprint", mutate: func(d *catalog.Definition) { d.Footprint.Width = 0 }, wantErr: "footprint must be positive"},
		{name: "refund above one", mutate: func(d *catalog.Definition) { d.Demolition.RefundPercentage = 1.5 }, wantErr: "outside [0,1]"},
		{name: "negative quantity", mutate: func(d *catalog.Definition) { d.Cost.Items[0].Quantity = -1 }, wantErr: "quantity cannot be negative"},
		{
			name:   "first tier cheaper than base cost",
			mutate: func(d *catalog.Definition) { d.Tiers[0].Cost.Items[0].Quantity = 5; d.Tiers[1].Cost.Items[0].Quantity = 5 },
		},
		{
			name:    "cheaper tier",
			mutate:  func(d *catalog.Definition) { d.Tiers[1].Cost.Items[0].Quantity = 5 },
			wantErr: "tier 2 is cheaper than tier 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := storehouse()
			tt.mutate(def)

			err := def.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMemoryCatalog_LookupAndSuggestions(t *testing.T) {
	house := storehouse()
	house.ID = "house_small"
	house.Category = catalog.CategoryHousing

	c, err := catalog.NewMemoryCatalog(storehouse(), house)
	require.NoError(t, err)

	def, err := c.GetDefinition("house_small")
	require.NoError(t, err)
	assert.Same(t, house, def)

	_, err = c.GetDefinition("house_smal")
	var unknown *catalog.UnknownDefinitionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"house_small"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), "did you mean house_small?")

	assert.Len(t, c.ByCategory(catalog.CategoryStorage), 1)
	assert.Equal(t, []string{"storehouse", "house_small"}, []string{c.All()[0].ID, c.All()[1].ID})
}

func TestMemoryCatalog_AcceptsUpgradeCheaperThanBase(t *testing.T) {
	// Arrange
	house := &catalog.Definition{
		ID:        "house_small",
		Name:      "Small House",
		Category:  catalog.CategoryHousing,
		Footprint: catalog.Footprint{Width: 2, Depth: 2, Height: 3},
		Cost: catalog.Cost{
			Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 10}},
			Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 50}},
		},
		Tiers:      []catalog.Tier{{Name: "Cottage", Cost: catalog.Cost{Items: []catalog.ItemCost{{ItemID: "stone", Quantity: 5}}}}},
		Demolition: catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: 0.5},
	}

	// Act
	c, err := catalog.NewMemoryCatalog(house)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCatalog_RejectsDuplicatesAndInvalid(t *testing.T) {
	c, err := catalog.NewMemoryCatalog(storehouse())
	require.NoError(t, err)

	err = c.Register(storehouse())
	assert.ErrorContains(t, err, "already registered")

	broken := storehouse()
	broken.ID = "broken"
	broken.Footprint.Depth = 0
	err = c.Register(broken)
	assert.ErrorContains(t, err, "invalid definition")
	assert.Equal(t, 1, c.Len())
}

func TestParseCategory(t *testing.T) {
	c, err := catalog.ParseCategory("farming")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategoryFarming, c)

	_, err = catalog.ParseCategory("castle")
	assert.Error(t, err)
}
