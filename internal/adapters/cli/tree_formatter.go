package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

var hundred = decimal.NewFromInt(100)

// TreeFormatter renders production chains as indented trees
type TreeFormatter struct {
	useColors bool
	useEmojis bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors, useEmojis bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
		useEmojis: useEmojis,
	}
}

// FormatTree renders a production chain, one line per node
func (f *TreeFormatter) FormatTree(root *production.ChainNode) string {
	if root == nil {
		return "(empty tree)"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node *production.ChainNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	if node.IsRaw {
		builder.WriteString(fmt.Sprintf("%s%s %s%s%s %s t/min (raw)\n",
			linePrefix,
			f.icon(node),
			f.color("\033[32m"),
			node.Good,
			f.colorReset(),
			formatRate(node.RequestedRate),
		))
	} else {
		builder.WriteString(fmt.Sprintf("%s%s %s %s t/min [%s%s x%d%s]%s%s\n",
			linePrefix,
			f.icon(node),
			node.Good,
			formatRate(node.RequestedRate),
			f.color("\033[33m"),
			node.Building.Name,
			node.BuildingCount,
			f.colorReset(),
			f.multiplierText(node),
			f.workforceText(node.Workforce),
		))
	}

	if len(node.Children) > 0 {
		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		for i, child := range node.Children {
			f.formatNode(builder, child, childPrefix, i == len(node.Children)-1, false)
		}
	}
}

func (f *TreeFormatter) icon(node *production.ChainNode) string {
	if !f.useEmojis {
		if node.IsRaw {
			return "[R]"
		}
		return "[P]"
	}
	if node.IsRaw {
		return "📦"
	}
	return "🏭"
}

func (f *TreeFormatter) multiplierText(node *production.ChainNode) string {
	if node.Multiplier.Equal(decimal.NewFromInt(1)) {
		return ""
	}
	return fmt.Sprintf(" %sx", node.Multiplier.StringFixed(2))
}

func (f *TreeFormatter) workforceText(workforce map[string]int) string {
	if len(workforce) == 0 {
		return ""
	}
	return ", workforce: " + formatWorkforce(workforce)
}

func (f *TreeFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatTreeSummary creates a compact summary of the tree
func (f *TreeFormatter) FormatTreeSummary(root *production.ChainNode) string {
	if root == nil {
		return "No production chain"
	}

	return fmt.Sprintf(
		"Chain: %d nodes, %d buildings, %d workforce, depth=%d, raw=%s",
		root.CountNodes(),
		root.TotalBuildings(),
		root.TotalWorkforce(),
		root.TotalDepth(),
		strings.Join(root.RequiredRawMaterials(), ","),
	)
}

// FormatCompactTree renders a single-line pre-order representation
func (f *TreeFormatter) FormatCompactTree(root *production.ChainNode) string {
	if root == nil {
		return "(empty)"
	}

	nodes := root.FlattenToList()
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node.IsRaw {
			parts = append(parts, fmt.Sprintf("[R:%s]", node.Good))
			continue
		}
		parts = append(parts, fmt.Sprintf("[%d:%s]", node.BuildingCount, node.Good))
	}

	return strings.Join(parts, " → ")
}

// FormatNodeDetails provides the full report for one node
func (f *TreeFormatter) FormatNodeDetails(node *production.ChainNode) string {
	if node == nil {
		return "No node"
	}

	var builder strings.Builder

	if node.IsRaw {
		builder.WriteString(fmt.Sprintf("Good:              %s (raw resource)\n", node.Good))
		builder.WriteString(fmt.Sprintf("Required:          %s t/min\n", formatRate(node.RequestedRate)))
		return builder.String()
	}

	locations := make([]string, 0, len(node.Locations()))
	for _, location := range node.Locations() {
		locations = append(locations, location.String())
	}

	builder.WriteString(fmt.Sprintf("Good:              %s\n", node.Good))
	builder.WriteString(fmt.Sprintf("Building:          %s\n", node.Building.Name))
	builder.WriteString(fmt.Sprintf("Locations:         %s\n", strings.Join(locations, ", ")))
	builder.WriteString(fmt.Sprintf("Count:             %d\n", node.BuildingCount))
	builder.WriteString(fmt.Sprintf("Productivity:      %s%%\n", node.Multiplier.Mul(hundred).StringFixed(1)))
	builder.WriteString(fmt.Sprintf("Output/building:   %s t/min\n", formatRate(node.EffectiveOutputRate)))

	if len(node.Building.Workforce) > 0 {
		builder.WriteString(fmt.Sprintf("Workforce/building: %s\n", formatWorkforce(node.Building.Workforce)))
		builder.WriteString(fmt.Sprintf("Total workforce:   %s\n", formatWorkforce(node.Workforce)))
	}

	if len(node.AppliedModifiers) > 0 {
		builder.WriteString(fmt.Sprintf("Modifiers:         %s\n", strings.Join(node.ModifierNames(), ", ")))
	}

	builder.WriteString(fmt.Sprintf("Recipe:            %s\n", node.Building.Recipe))
	builder.WriteString(fmt.Sprintf("Target rate:       %s t/min\n", formatRate(node.RequestedRate)))
	if node.Surplus().IsPositive() {
		builder.WriteString(fmt.Sprintf("Surplus:           %s t/min\n", formatRate(node.Surplus())))
	}

	if len(node.Inputs) > 0 {
		builder.WriteString("Inputs:\n")
		for _, input := range node.Inputs {
			builder.WriteString(fmt.Sprintf("  %s: %s t/min\n", input.Good, formatRate(input.Rate)))
		}
	}

	return builder.String()
}

func formatRate(rate decimal.Decimal) string {
	return rate.StringFixed(2)
}

// formatWorkforce renders "Artisans 15, Workers 10" sorted by type
func formatWorkforce(workforce map[string]int) string {
	types := make([]string, 0, len(workforce))
	for workforceType := range workforce {
		types = append(types, workforceType)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, workforceType := range types {
		parts = append(parts, fmt.Sprintf("%s %d", workforceType, workforce[workforceType]))
	}
	return strings.Join(parts, ", ")
}
