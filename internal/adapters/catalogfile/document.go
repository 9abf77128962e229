package catalogfile

import (
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// Document is the top level of a catalog YAML file
type Document struct {
	Version   int                  `yaml:"version" validate:"eq=1"`
	Buildings []BuildingDefinition `yaml:"buildings" validate:"unique=ID,dive"`
}

type BuildingDefinition struct {
	ID                string           `yaml:"id" validate:"required"`
	Name              string           `yaml:"name" validate:"required"`
	Description       string           `yaml:"description"`
	Category          string           `yaml:"category" validate:"required"`
	Footprint         FootprintDoc     `yaml:"footprint"`
	GridCellSize      float64          `yaml:"grid_cell_size" validate:"min=0"`
	RotationSnapAngle float64          `yaml:"rotation_snap_angle" validate:"min=0,max=360"`
	Cost              CostDoc          `yaml:"cost"`
	BuildTime         float64          `yaml:"build_time" validate:"min=0"`
	Requirements      RequirementsDoc  `yaml:"requirements"`
	Tiers             []TierDoc        `yaml:"tiers" validate:"dive"`
	Functionality     FunctionalityDoc `yaml:"functionality"`
	Demolition        DemolitionDoc    `yaml:"demolition"`
}

type FootprintDoc struct {
	Width  int     `yaml:"width" validate:"min=1"`
	Depth  int     `yaml:"depth" validate:"min=1"`
	Height float64 `yaml:"height" validate:"min=0"`
}

type ItemLineDoc struct {
	Item             string  `yaml:"item" validate:"required"`
	Quantity         int     `yaml:"quantity" validate:"min=0"`
	ReturnOnDemolish bool    `yaml:"return_on_demolish"`
	ReturnPercentage float64 `yaml:"return_percentage" validate:"min=0,max=1"`
}

type CurrencyLineDoc struct {
	Kind   string `yaml:"kind" validate:"required"`
	Amount int    `yaml:"amount" validate:"min=0"`
}

type CostDoc struct {
	Items      []ItemLineDoc     `yaml:"items" validate:"dive"`
	Currencies []CurrencyLineDoc `yaml:"currencies" validate:"dive"`
}

type RequirementsDoc struct {
	MinLevel              int     `yaml:"min_level" validate:"min=0"`
	RequiredQuest         string  `yaml:"required_quest"`
	MinDistanceFromOthers float64 `yaml:"min_distance_from_others" validate:"min=0"`
	Indoor                bool    `yaml:"indoor"`
	Outdoor               bool    `yaml:"outdoor"`
	FlatGround            bool    `yaml:"flat_ground"`
	WaterNearby           bool    `yaml:"water_nearby"`
}

type TierDoc struct {
	Name                      string  `yaml:"name" validate:"required"`
	Cost                      CostDoc `yaml:"cost"`
	BuildTime                 float64 `yaml:"build_time" validate:"min=0"`
	ExtraStorageSlots         int     `yaml:"extra_storage_slots" validate:"min=0"`
	ProductionSpeedMultiplier float64 `yaml:"production_speed_multiplier" validate:"min=0"`
	QualityBonus              float64 `yaml:"quality_bonus"`
}

type StorageDoc struct {
	Slots      int `yaml:"slots" validate:"min=0"`
	StackLimit int `yaml:"stack_limit" validate:"min=0"`
}

type ProductionDoc struct {
	Item     string  `yaml:"item"`
	Interval float64 `yaml:"interval" validate:"min=0"`
	Quantity int     `yaml:"quantity" validate:"min=0"`
}

type FunctionalityDoc struct {
	Storage         StorageDoc    `yaml:"storage"`
	Production      ProductionDoc `yaml:"production"`
	CraftingStation string        `yaml:"crafting_station"`
	PlantPlots      int           `yaml:"plant_plots" validate:"min=0"`
	RestQuality     float64       `yaml:"rest_quality" validate:"min=0"`
}

type DemolitionDoc struct {
	// nil means demolishable
	Demolishable     *bool   `yaml:"demolishable"`
	RefundPercentage float64 `yaml:"refund_percentage" validate:"min=0,max=1"`
}

// ToDefinition converts a document entry to the domain model
func (b BuildingDefinition) ToDefinition() (*catalog.Definition, error) {
	category, err := catalog.ParseCategory(b.Category)
	if err != nil {
		return nil, err
	}

	tiers := make([]catalog.Tier, len(b.Tiers))
	for i, t := range b.Tiers {
		tiers[i] = catalog.Tier{
			Name:                      t.Name,
			Cost:                      t.Cost.toCost(),
			BuildTime:                 t.BuildTime,
			ExtraStorageSlots:         t.ExtraStorageSlots,
			ProductionSpeedMultiplier: t.ProductionSpeedMultiplier,
			QualityBonus:              t.QualityBonus,
		}
	}

	// height defaults to one unit
	height := b.Footprint.Height
	if height == 0 {
		height = 1
	}

	demolishable := true
	if b.Demolition.Demolishable != nil {
		demolishable = *b.Demolition.Demolishable
	}

	return &catalog.Definition{
		ID:                b.ID,
		Name:              b.Name,
		Description:       b.Description,
		Category:          category,
		Footprint:         catalog.Footprint{Width: b.Footprint.Width, Depth: b.Footprint.Depth, Height: height},
		GridCellSize:      b.GridCellSize,
		RotationSnapAngle: b.RotationSnapAngle,
		Cost:              b.Cost.toCost(),
		BuildTime:         b.BuildTime,
		Requirements: catalog.Requirements{
			MinLevel:              b.Requirements.MinLevel,
			RequiredQuest:         b.Requirements.RequiredQuest,
			MinDistanceFromOthers: b.Requirements.MinDistanceFromOthers,
			Indoor:                b.Requirements.Indoor,
			Outdoor:               b.Requirements.Outdoor,
			RequiresFlatGround:    b.Requirements.FlatGround,
			RequiresWaterNearby:   b.Requirements.WaterNearby,
		},
		Tiers: tiers,
		Functionality: catalog.Functionality{
			Storage: catalog.StorageSpec{Slots: b.Functionality.Storage.Slots, StackLimit: b.Functionality.Storage.StackLimit},
			Production: catalog.ProductionSpec{
				ItemID:   b.Functionality.Production.Item,
				Interval: b.Functionality.Production.Interval,
				Quantity: b.Functionality.Production.Quantity,
			},
			CraftingStation: b.Functionality.CraftingStation,
			PlantPlots:      b.Functionality.PlantPlots,
			RestQuality:     b.Functionality.RestQuality,
		},
		Demolition: catalog.DemolitionPolicy{
			Demolishable:     demolishable,
			RefundPercentage: b.Demolition.RefundPercentage,
		},
	}, nil
}

func (c CostDoc) toCost() catalog.Cost {
	var cost catalog.Cost
	for _, l := range c.Items {
		cost.Items = append(cost.Items, catalog.ItemCost{
			ItemID:           l.Item,
			Quantity:         l.Quantity,
			ReturnOnDemolish: l.ReturnOnDemolish,
			ReturnPercentage: l.ReturnPercentage,
		})
	}
	for _, l := range c.Currencies {
		cost.Currencies = append(cost.Currencies, catalog.CurrencyCost{Kind: catalog.Currency(l.Kind), Amount: l.Amount})
	}
	return cost
}
