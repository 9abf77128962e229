package catalog

// StorageSpec describes the internal inventory of a building
type StorageSpec struct {
	Slots int
	// StackLimit caps the quantity held by one slot; 0 means unlimited
	StackLimit int
}

// ProductionSpec describes periodic item output
type ProductionSpec struct {
	ItemID   string
	Interval float64
	Quantity int
}

// Functionality is the behavior descriptor of a definition
type Functionality struct {
	Storage         StorageSpec
	Production      ProductionSpec
	CraftingStation string
	PlantPlots      int
	RestQuality     float64
}

// HasStorage reports whether instances get storage slots at tier 0
func (f Functionality) HasStorage() bool {
	return f.Storage.Slots > 0
}

// ProducesItems reports whether instances run the production timer
func (f Functionality) ProducesItems() bool {
	return f.Production.ItemID != "" && f.Production.Quantity > 0 && f.Production.Interval > 0
}

// IsCraftingStation reports whether the building unlocks a crafting station
func (f Functionality) IsCraftingStation() bool {
	return f.CraftingStation != ""
}

// HasPlantPlots reports whether crops can be planted in the building
func (f Functionality) HasPlantPlots() bool {
	return f.PlantPlots > 0
}

// CanRest reports whether the player can sleep in the building
func (f Functionality) CanRest() bool {
	return f.RestQuality > 0
}

// Requirements gate where and when a definition can be placed
type Requirements struct {
	MinLevel              int
	RequiredQuest         string
	MinDistanceFromOthers float64
	Indoor                bool
	Outdoor               bool
	RequiresFlatGround    bool
	RequiresWaterNearby   bool
}

// DemolitionPolicy controls refunds on demolish
type DemolitionPolicy struct {
	Demolishable     bool
	RefundPercentage float64
}
