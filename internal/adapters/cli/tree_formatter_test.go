package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func resolveDemo(t *testing.T, good, rate string, optimized bool) *production.ChainNode {
	t.Helper()
	root, err := services.NewChainResolver(helpers.NewDemoCatalog(t), nil).
		Resolve(context.Background(), good, helpers.Dec(rate), optimized)
	require.NoError(t, err)
	return root
}

func TestFormatTree_Plain(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(false, false)
	root := resolveDemo(t, "Bread", "2", false)

	// Act
	output := formatter.FormatTree(root)

	// Assert
	expected := "[P] Bread 2.00 t/min [Bakery x2], workforce: Artisans 30\n" +
		"└── [P] Flour 2.67 t/min [Mill x1], workforce: Workers 10\n" +
		"    └── [R] Grain 4.00 t/min (raw)\n"
	assert.Equal(t, expected, output)
}

func TestFormatTree_OptimizedSiblings(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(false, false)
	root := resolveDemo(t, "Chocolate", "8", true)

	// Act
	output := formatter.FormatTree(root)

	// Assert
	expected := "[P] Chocolate 8.00 t/min [Chocolate Factory x6] 1.50x, workforce: Engineers 60\n" +
		"├── [R] Cocoa 13.50 t/min (raw)\n" +
		"└── [R] Sugar 4.50 t/min (raw)\n"
	assert.Equal(t, expected, output)
}

func TestFormatTree_ColorsAndEmojis(t *testing.T) {
	formatter := NewTreeFormatter(true, true)

	output := formatter.FormatTree(production.NewRawChainNode("Cocoa", helpers.Dec("3")))

	assert.Equal(t, "📦 \033[32mCocoa\033[0m 3.00 t/min (raw)\n", output)
	assert.Equal(t, "(empty tree)", formatter.FormatTree(nil))
}

func TestFormatTreeSummary(t *testing.T) {
	formatter := NewTreeFormatter(false, false)
	root := resolveDemo(t, "Chocolate", "8", true)

	assert.Equal(t, "Chain: 3 nodes, 6 buildings, 60 workforce, depth=2, raw=Cocoa,Sugar", formatter.FormatTreeSummary(root))
	assert.Equal(t, "No production chain", formatter.FormatTreeSummary(nil))
}

func TestFormatCompactTree(t *testing.T) {
	formatter := NewTreeFormatter(false, false)
	root := resolveDemo(t, "Bread", "2", false)

	assert.Equal(t, "[2:Bread] → [1:Flour] → [R:Grain]", formatter.FormatCompactTree(root))
	assert.Equal(t, "(empty)", formatter.FormatCompactTree(nil))
}

func TestFormatNodeDetails(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(false, false)
	root := resolveDemo(t, "Chocolate", "8", true)

	// Act
	output := formatter.FormatNodeDetails(root)

	// Assert
	expected := "Good:              Chocolate\n" +
		"Building:          Chocolate Factory\n" +
		"Locations:         New World, Old World\n" +
		"Count:             6\n" +
		"Productivity:      150.0%\n" +
		"Output/building:   1.50 t/min\n" +
		"Workforce/building: Engineers 20\n" +
		"Total workforce:   Engineers 60\n" +
		"Modifiers:         Electricity, Automation\n" +
		"Recipe:            1.5 Cocoa + 0.5 Sugar -> 1 Chocolate\n" +
		"Target rate:       8.00 t/min\n" +
		"Surplus:           1.00 t/min\n" +
		"Inputs:\n" +
		"  Cocoa: 13.50 t/min\n" +
		"  Sugar: 4.50 t/min\n"
	assert.Equal(t, expected, output)
}

func TestFormatNodeDetails_Raw(t *testing.T) {
	formatter := NewTreeFormatter(false, false)

	output := formatter.FormatNodeDetails(production.NewRawChainNode("Grain", helpers.Dec("4")))

	assert.Equal(t, "Good:              Grain (raw resource)\nRequired:          4.00 t/min\n", output)
	assert.Equal(t, "No node", formatter.FormatNodeDetails(nil))
}

func TestFormatWorkforce_SortsTypes(t *testing.T) {
	assert.Equal(t, "Artisans 15, Engineers 2, Workers 10", formatWorkforce(map[string]int{
		"Workers": 10, "Artisans": 15, "Engineers": 2,
	}))
}
