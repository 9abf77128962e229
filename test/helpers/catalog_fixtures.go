package helpers

import (
	"testing"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// HouseSmall is a 2x2 house costing 10 wood (half refunded) and 50 gold
func HouseSmall() *catalog.Definition {
	return &catalog.Definition{
		ID:        "house_small",
		Name:      "Small House",
		Category:  catalog.CategoryHousing,
		Footprint: catalog.Footprint{Width: 2, Depth: 2, Height: 3},
		Cost: catalog.Cost{
			Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 10, ReturnOnDemolish: true, ReturnPercentage: 0.5}},
			Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 50}},
		},
		BuildTime: 5,
		Tiers: []catalog.Tier{
			{
				Name: "Cottage",
				Cost: catalog.Cost{
					Items:      []catalog.ItemCost{{ItemID: "wood", Quantity: 20}},
					Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 80}},
				},
				BuildTime: 10,
			},
		},
		Functionality: catalog.Functionality{RestQuality: 0.5},
		Demolition:    catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: 0.5},
	}
}

// WoodShed produces 2 planks every 4 seconds into one unlimited slot
func WoodShed() *catalog.Definition {
	return &catalog.Definition{
		ID:        "wood_shed",
		Name:      "Wood Shed",
		Category:  catalog.CategoryCrafting,
		Footprint: catalog.Footprint{Width: 1, Depth: 1, Height: 2},
		Cost: catalog.Cost{
			Items: []catalog.ItemCost{{ItemID: "wood", Quantity: 5, ReturnOnDemolish: true, ReturnPercentage: 1}},
		},
		BuildTime: 2,
		Tiers: []catalog.Tier{
			{
				Name:                      "Sawmill",
				Cost:                      catalog.Cost{Items: []catalog.ItemCost{{ItemID: "stone", Quantity: 5}}},
				BuildTime:                 4,
				ExtraStorageSlots:         1,
				ProductionSpeedMultiplier: 2,
			},
		},
		Functionality: catalog.Functionality{
			Storage:    catalog.StorageSpec{Slots: 1},
			Production: catalog.ProductionSpec{ItemID: "plank", Interval: 4, Quantity: 2},
		},
		Demolition: catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: 1},
	}
}

// Well produces water straight into the inventory and cannot be demolished
func Well() *catalog.Definition {
	return &catalog.Definition{
		ID:            "well",
		Name:          "Well",
		Category:      catalog.CategoryUtility,
		Footprint:     catalog.Footprint{Width: 1, Depth: 1, Height: 1},
		Cost:          catalog.Cost{Currencies: []catalog.CurrencyCost{{Kind: "gold", Amount: 20}}},
		Functionality: catalog.Functionality{Production: catalog.ProductionSpec{ItemID: "water", Interval: 1, Quantity: 1}},
		Demolition:    catalog.DemolitionPolicy{Demolishable: false},
	}
}

// NewTestCatalog builds a catalog from the given definitions, or from every fixture when none are given
func NewTestCatalog(t *testing.T, defs ...*catalog.Definition) *catalog.MemoryCatalog {
	t.Helper()
	if len(defs) == 0 {
		defs = []*catalog.Definition{HouseSmall(), WoodShed(), Well()}
	}
	c, err := catalog.NewMemoryCatalog(defs...)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return c
}
