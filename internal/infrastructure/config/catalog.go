package config

// Catalog sources
const (
	CatalogSourceDemo     = "demo"
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where production data is loaded from
type CatalogConfig struct {
	// Source: demo (embedded), file (YAML at Path), database
	Source string `mapstructure:"source" validate:"required,oneof=demo file database"`

	// Path to a YAML catalog, required when Source is "file"
	Path string `mapstructure:"path" validate:"required_if=Source file"`
}

// CalculationConfig holds defaults for chain calculations
type CalculationConfig struct {
	// Apply modifiers when the CLI flag is not given
	Optimized bool `mapstructure:"optimized"`
}
