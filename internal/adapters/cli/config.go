package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/annocalc-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage annocalc configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command line flags (--catalog, --verbose)
2. User preferences (~/.annocalc/preferences.json)
3. Environment variables (ANNO_* prefix)
4. Config file (config.yaml)
5. Default values

Examples:
  annocalc config show
  annocalc config set-catalog ./catalog.yaml
  annocalc config set-optimized true
  annocalc config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCatalogCommand())
	cmd.AddCommand(newConfigSetOptimizedCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadSettings()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			fmt.Fprintln(out, "annocalc Configuration")
			fmt.Fprintln(out, "======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
			if cfg.Catalog.Path != "" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nCalculation:")
			fmt.Fprintf(out, "  Optimized:        %t\n", cfg.Calculation.Optimized)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)
			if cfg.Metrics.TextfilePath != "" {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

// newConfigSetCatalogCommand creates the config set-catalog subcommand
func newConfigSetCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-catalog <file>",
		Short: "Use a YAML catalog file by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := handler.SetDefaultCatalog(args[0]); err != nil {
				return fmt.Errorf("failed to set default catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default catalog set to %s\n", args[0])
			return nil
		},
	}
}

// newConfigSetOptimizedCommand creates the config set-optimized subcommand
func newConfigSetOptimizedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-optimized <true|false>",
		Short: "Apply modifiers by default in chain calculations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			optimized, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value %q: expected true or false", args[0])
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := handler.SetOptimized(optimized); err != nil {
				return fmt.Errorf("failed to set optimized preference: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Optimized calculations by default: %t\n", optimized)
			return nil
		},
	}
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all user preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ User preferences cleared")
			return nil
		},
	}
}

// maskPassword hides the password in a database URL
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	return parsed.Redacted()
}
