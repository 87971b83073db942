package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/annocalc-go/internal/application/production/queries"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
)

// NewChainCommand creates the chain command
func NewChainCommand() *cobra.Command {
	var (
		rate      string
		optimized bool
		details   bool
		compact   bool
		tiers     bool
	)

	cmd := &cobra.Command{
		Use:   "chain <good>",
		Short: "Calculate the production chain for a good",
		Long: `Calculate the buildings, workforce and raw materials needed to sustain
--rate tons per minute of a good.

With --optimized the best modifiers from the catalog are applied to every
building (the calculation.optimized setting changes the default).

Examples:
  annocalc chain Bread --rate 4
  annocalc chain "Chocolate" --rate 8 --optimized --details`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRate, err := parseRate(rate)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("optimized") {
				optimized = app.cfg.Calculation.Optimized
			}

			response, err := app.mediator.Send(cmd.Context(), &queries.CalculateChainQuery{
				Good:      args[0],
				Rate:      parsedRate,
				Optimized: optimized,
			})
			if err != nil {
				return err
			}

			result, ok := response.(*queries.CalculateChainResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", response)
			}

			out := cmd.OutOrStdout()
			formatter := NewTreeFormatter(useColors(cmd), !noColor)

			scenario := "base"
			if optimized {
				scenario = "optimized"
			}
			fmt.Fprintf(out, "Target: %s t/min of %s (%s)\n", formatRate(parsedRate), args[0], scenario)
			fmt.Fprintf(out, "Calculation: %s\n\n", result.CalculationID)

			if compact {
				fmt.Fprintln(out, formatter.FormatCompactTree(result.Root))
			} else {
				fmt.Fprint(out, formatter.FormatTree(result.Root))
			}

			if details {
				fmt.Fprintln(out)
				for _, node := range result.Root.FlattenToList() {
					fmt.Fprintln(out, formatter.FormatNodeDetails(node))
				}
			}

			if tiers {
				fmt.Fprintln(out)
				fmt.Fprint(out, FormatTiers(services.NewChainAnalyzer().IdentifyProductionTiers(result.Root)))
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, FormatSummary(result.Summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rate, "rate", "r", "1", "Target output in tons per minute")
	cmd.Flags().BoolVarP(&optimized, "optimized", "o", false, "Apply the best modifiers")
	cmd.Flags().BoolVar(&details, "details", false, "Print a full report for every node")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the chain on a single line")
	cmd.Flags().BoolVar(&tiers, "tiers", false, "Print the build order from raw materials up")

	return cmd
}

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	var rate string

	cmd := &cobra.Command{
		Use:   "compare <good>",
		Short: "Compare the base and optimized chains for a good",
		Long: `Resolve the same target without and with modifiers and report the
buildings and workforce the modifiers save.

Example:
  annocalc compare Chocolate --rate 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRate, err := parseRate(rate)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := app.mediator.Send(cmd.Context(), &queries.CompareScenariosQuery{
				Good: args[0],
				Rate: parsedRate,
			})
			if err != nil {
				return err
			}

			result, ok := response.(*queries.CompareScenariosResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", response)
			}

			out := cmd.OutOrStdout()
			formatter := NewTreeFormatter(useColors(cmd), !noColor)
			rule := strings.Repeat("=", 50)

			fmt.Fprintf(out, "Target: %s t/min of %s\n", formatRate(parsedRate), args[0])
			fmt.Fprintf(out, "Calculation: %s\n%s\n", result.CalculationID, rule)

			fmt.Fprintln(out, "BASE SCENARIO (no modifiers)")
			fmt.Fprint(out, formatter.FormatTree(result.Base))
			fmt.Fprintln(out, rule)

			fmt.Fprintln(out, "OPTIMIZED SCENARIO (best modifiers)")
			fmt.Fprint(out, formatter.FormatTree(result.Optimized))
			fmt.Fprintln(out, rule)

			fmt.Fprint(out, FormatComparison(result.Comparison))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rate, "rate", "r", "1", "Target output in tons per minute")

	return cmd
}
