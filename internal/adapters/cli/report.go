package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
)

// FormatSummary renders the totals of one chain
func FormatSummary(summary services.ChainSummary) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Total buildings:   %d\n", summary.TotalBuildings))
	for _, name := range sortedKeys(summary.BuildingsByType) {
		builder.WriteString(fmt.Sprintf("  %s: %d\n", name, summary.BuildingsByType[name]))
	}

	builder.WriteString(fmt.Sprintf("Total workforce:   %d\n", summary.TotalWorkforce))
	for _, workforceType := range sortedKeys(summary.WorkforceByType) {
		builder.WriteString(fmt.Sprintf("  %s: %d\n", workforceType, summary.WorkforceByType[workforceType]))
	}

	if len(summary.RawInputs) > 0 {
		builder.WriteString("Raw materials:\n")
		goods := make([]string, 0, len(summary.RawInputs))
		for good := range summary.RawInputs {
			goods = append(goods, good)
		}
		sort.Strings(goods)
		for _, good := range goods {
			builder.WriteString(fmt.Sprintf("  %s: %s t/min\n", good, formatRate(summary.RawInputs[good])))
		}
	}

	return builder.String()
}

// FormatComparison renders what the optimized scenario saves over the base one
func FormatComparison(c services.ScenarioComparison) string {
	var builder strings.Builder

	builder.WriteString("COMPARISON SUMMARY\n")
	builder.WriteString(fmt.Sprintf("Base scenario total buildings:      %d\n", c.BaseBuildings))
	builder.WriteString(fmt.Sprintf("Optimized scenario total buildings: %d\n", c.OptimizedBuildings))
	builder.WriteString(fmt.Sprintf("Buildings saved: %d\n", c.BuildingsSaved))
	builder.WriteString(fmt.Sprintf("Efficiency improvement: %s%%\n\n", c.EfficiencyImprovement.StringFixed(1)))

	builder.WriteString(fmt.Sprintf("Base scenario total workforce:      %d\n", c.BaseWorkforce))
	builder.WriteString(fmt.Sprintf("Optimized scenario total workforce: %d\n", c.OptimizedWorkforce))
	builder.WriteString(fmt.Sprintf("Workforce saved: %d\n", c.WorkforceSaved))
	builder.WriteString(fmt.Sprintf("Workforce reduction: %s%%\n", c.WorkforceReduction.StringFixed(1)))

	if len(c.WorkforceByType) > 0 {
		builder.WriteString("\nWorkforce breakdown by type:\n")
		for _, delta := range c.WorkforceByType {
			builder.WriteString(fmt.Sprintf("  %s: %d → %d (%+d, %s%%)\n",
				delta.Type,
				delta.Base,
				delta.Optimized,
				-delta.Saved,
				delta.ReductionPercent.StringFixed(1),
			))
		}
	}

	return builder.String()
}

// FormatTiers renders production tiers in build order
func FormatTiers(tiers []services.ProductionTier) string {
	var builder strings.Builder

	builder.WriteString("Build order:\n")
	for _, tier := range tiers {
		goods := make([]string, 0, len(tier.Nodes))
		for _, node := range tier.Nodes {
			goods = append(goods, node.Good)
		}
		builder.WriteString(fmt.Sprintf("  Tier %d: %s\n", tier.Depth, strings.Join(goods, ", ")))
	}

	return builder.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
