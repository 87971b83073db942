package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	verbose     bool
	noColor     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "annocalc",
		Short: "Anno production chain calculator",
		Long: `annocalc computes the production buildings, workforce and raw materials
needed to sustain a target output rate of a good, with or without modifiers.

The production catalog comes from the bundled demo data, a YAML file or a
database, as configured in config.yaml (ANNO_* environment variables override).

Examples:
  annocalc chain Bread --rate 4
  annocalc chain Chocolate --rate 8 --optimized
  annocalc compare Chocolate --rate 8
  annocalc catalog list --catalog ./catalog.yaml
  annocalc catalog import ./catalog.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/annocalc)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"YAML catalog file (overrides catalog.source)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(NewChainCommand())
	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
