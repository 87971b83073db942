package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/annocalc-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/annocalc-go/internal/adapters/persistence"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/internal/infrastructure/database"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the production catalog",
		Long: `Inspect and manage the goods, buildings and modifiers used by calculations.

Examples:
  annocalc catalog list
  annocalc catalog validate --catalog ./catalog.yaml
  annocalc catalog import ./catalog.yaml
  annocalc catalog export --output demo.yaml`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogExportCommand())

	return cmd
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goods, buildings and modifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadConfiguredCatalog(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), FormatCatalog(catalog))
			return nil
		},
	}
}

// newCatalogValidateCommand creates the catalog validate subcommand
func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for missing goods and producer conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadConfiguredCatalog(cmd.Context())
			if err != nil {
				return err
			}

			if err := catalog.Validate(); err != nil {
				return fmt.Errorf("catalog is inconsistent:\n%w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Catalog is valid: %d goods, %d buildings, %d modifiers\n",
				len(catalog.Goods()), len(catalog.Buildings()), len(catalog.Modifiers()))
			return nil
		},
	}
}

// newCatalogImportCommand creates the catalog import subcommand
func newCatalogImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Store a YAML catalog in the configured database",
		Long: `Parse and validate a YAML catalog, then replace the catalog stored in the
database configured under "database". Set catalog.source=database to
calculate against it.

Example:
  annocalc catalog import ./catalog.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			catalog, err := catalogfile.NewFileSource(args[0]).LoadCatalog(ctx)
			if err != nil {
				return err
			}
			if err := catalog.Validate(); err != nil {
				return fmt.Errorf("refusing to import inconsistent catalog:\n%w", err)
			}

			cfg, err := loadSettings()
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate catalog tables: %w", err)
			}

			if err := persistence.NewGormCatalogRepository(db).SaveCatalog(ctx, catalog); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d goods, %d buildings, %d modifiers into %s database\n",
				len(catalog.Goods()), len(catalog.Buildings()), len(catalog.Modifiers()), cfg.Database.Type)
			return nil
		},
	}
}

// newCatalogExportCommand creates the catalog export subcommand
func newCatalogExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadConfiguredCatalog(cmd.Context())
			if err != nil {
				return err
			}

			if output != "" {
				if err := catalogfile.NewFileSource(output).SaveCatalog(cmd.Context(), catalog); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Catalog written to %s\n", output)
				return nil
			}

			data, err := catalogfile.EncodeCatalog(catalog)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

// loadConfiguredCatalog loads the catalog without validating it, so that
// list and validate can still show broken catalogs
func loadConfiguredCatalog(ctx context.Context) (*production.Catalog, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return loadCatalog(ctx, cfg)
}

// FormatCatalog renders every good, building and modifier
func FormatCatalog(catalog *production.Catalog) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Goods (%d):\n", len(catalog.Goods())))
	for _, good := range catalog.Goods() {
		kind := "manufactured"
		if good.IsRaw {
			kind = "raw"
		}
		builder.WriteString(fmt.Sprintf("  %-20s %s\n", good.Name, kind))
	}

	builder.WriteString(fmt.Sprintf("\nBuildings (%d):\n", len(catalog.Buildings())))
	for _, building := range catalog.Buildings() {
		locations := make([]string, 0, len(building.Locations))
		for _, location := range building.Locations {
			locations = append(locations, location.String())
		}
		builder.WriteString(fmt.Sprintf("  %s: %s every %ss\n", building.Name, building.Recipe, building.CycleTimeSeconds))
		builder.WriteString(fmt.Sprintf("    tags: %s | locations: %s", strings.Join(building.Tags, ", "), strings.Join(locations, ", ")))
		if len(building.Workforce) > 0 {
			builder.WriteString(" | workforce: " + formatWorkforce(building.Workforce))
		}
		if building.IsElectrifiable {
			builder.WriteString(" | electrifiable")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(fmt.Sprintf("\nModifiers (%d):\n", len(catalog.Modifiers())))
	for _, modifier := range catalog.Modifiers() {
		builder.WriteString(fmt.Sprintf("  %s: %s\n", modifier.Name, describeModifier(modifier)))
	}

	return builder.String()
}

func describeModifier(m *production.Modifier) string {
	var effect string
	switch m.Kind {
	case production.ModifierProductivity:
		effect = fmt.Sprintf("+%s%% productivity", m.Magnitude.Mul(hundred).StringFixed(0))
	case production.ModifierWorkforceReduction:
		effect = fmt.Sprintf("-%s%% workforce", m.Magnitude.Mul(hundred).StringFixed(0))
	case production.ModifierInputReplacement:
		effect = fmt.Sprintf("%s replaces %s", m.ReplacementGood, m.ReplacedGood)
	case production.ModifierExtraOutput:
		good := m.ExtraGood
		if good == "" {
			good = "output"
		}
		effect = fmt.Sprintf("+%s %s every %d cycles", m.Magnitude, good, m.CycleInterval)
	default:
		effect = string(m.Kind)
	}

	suffix := ""
	if m.RequiresElectricity {
		suffix = ", needs electricity"
	}
	return fmt.Sprintf("%s (tags: %s%s)", effect, strings.Join(m.Tags, ", "), suffix)
}
