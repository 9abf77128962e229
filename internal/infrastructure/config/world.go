package config

// WorldConfig holds the settings a fresh world starts from
type WorldConfig struct {
	// YAML building catalog
	CatalogPath string `mapstructure:"catalog_path" validate:"required"`

	// Minimum clearance between footprints, in world units
	SafetyMargin float64 `mapstructure:"safety_margin" validate:"min=0"`

	// Degrees per second for continuous rotation while placing
	RotationSpeed float64 `mapstructure:"rotation_speed" validate:"gt=0"`

	// Granted once when no saved world exists
	StartingItems    map[string]int `mapstructure:"starting_items" validate:"dive,keys,required,resource_id,endkeys,min=0"`
	StartingCurrency map[string]int `mapstructure:"starting_currency" validate:"dive,keys,required,resource_id,endkeys,min=0"`

	PlayerName  string `mapstructure:"player_name" validate:"required"`
	PlayerLevel int    `mapstructure:"player_level" validate:"min=1"`
}
