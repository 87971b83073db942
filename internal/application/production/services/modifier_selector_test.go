package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func newBrewery(t *testing.T) *production.ProductionBuilding {
	return helpers.NewTestBuilding(t, helpers.BuildingFixture{
		Name:      "Brewery",
		Inputs:    "Malt:1, Hops:1",
		Outputs:   "Beer:1",
		Tags:      []string{"Production"},
		Workforce: map[string]int{"Workers": 10, "Artisans": 3},
	})
}

func TestModifierSelector_SumsProductivityAndExtraOutput(t *testing.T) {
	// Arrange
	brewery := newBrewery(t)
	candidates := []*production.Modifier{
		mustModifier(production.NewProductivityModifier("Brewmaster", helpers.Dec("0.1"), []string{"Production"})),
		mustModifier(production.NewProductivityModifier("Copper Kettle", helpers.Dec("0.2"), []string{"Production"})),
		mustModifier(production.NewExtraOutputModifier("Barrel", "Beer", helpers.Dec("1"), 4, []string{"Production"})),
		mustModifier(production.NewExtraOutputModifier("Schnapps", "Schnapps", helpers.Dec("1"), 2, []string{"Production"})),
	}

	// Act
	selection := services.NewModifierSelector().Select(brewery, candidates)

	// Assert
	assert.True(t, selection.ProductivityBonus().Equal(helpers.Dec("0.3")))
	assert.True(t, selection.ExtraOutputBonus("Beer").Equal(helpers.Dec("0.25")))
	assert.True(t, selection.Multiplier("Beer").Equal(helpers.Dec("1.55")))
	require.Len(t, selection.Modifiers, 3, "extra output of a good the building does not make is skipped")
	assert.Equal(t, "Barrel", selection.Modifiers[2].Name)
}

func TestModifierSelector_SkipsInapplicable(t *testing.T) {
	// Arrange
	brewery := newBrewery(t)
	candidates := []*production.Modifier{
		mustModifier(production.NewProductivityModifier("Electricity", helpers.Dec("0.5"), []string{"Production"}, production.RequiringElectricity())),
		mustModifier(production.NewProductivityModifier("Fishery Boost", helpers.Dec("0.5"), []string{"Coast"})),
		mustModifier(production.NewInputReplacementModifier("Corn Beer", "Wheat", "Corn", helpers.Dec("1"), []string{"Production"})),
	}

	// Act
	selection := services.NewModifierSelector().Select(brewery, candidates)

	// Assert
	assert.Empty(t, selection.Modifiers)
	assert.True(t, selection.Multiplier("Beer").Equal(helpers.Dec("1")))
}

func TestModifierSelector_InputReplacementPicksHighestRank(t *testing.T) {
	// Arrange
	brewery := newBrewery(t)
	candidates := []*production.Modifier{
		mustModifier(production.NewInputReplacementModifier("Rye Malt", "Malt", "Rye", helpers.Dec("1"), []string{"Production"})),
		mustModifier(production.NewInputReplacementModifier("Barley Malt", "Malt", "Barley", helpers.Dec("3"), []string{"Production"})),
		mustModifier(production.NewInputReplacementModifier("Spelt Malt", "Malt", "Spelt", helpers.Dec("3"), []string{"Production"})),
		mustModifier(production.NewInputReplacementModifier("Wild Hops", "Hops", "Herbs", helpers.Dec("1"), []string{"Production"})),
	}

	// Act
	selection := services.NewModifierSelector().Select(brewery, candidates)
	inputs := selection.ApplyToInputs(brewery.Recipe.Inputs)

	// Assert
	require.Len(t, selection.Modifiers, 2)
	assert.Equal(t, "Barley Malt", selection.Replacements["Malt"].Name)
	assert.Equal(t, "Wild Hops", selection.Replacements["Hops"].Name)
	assert.Equal(t, []string{"Barley", "Herbs"}, []string{inputs[0].Good, inputs[1].Good})
}

func TestSelection_ApplyToInputsMergesIntoExistingSlot(t *testing.T) {
	// Arrange
	brewery := newBrewery(t)
	selection := services.NewModifierSelector().Select(brewery, []*production.Modifier{
		mustModifier(production.NewInputReplacementModifier("Hoppy Malt", "Malt", "Hops", helpers.Dec("1"), []string{"Production"})),
	})

	// Act
	inputs := selection.ApplyToInputs(brewery.Recipe.Inputs)

	// Assert
	require.Len(t, inputs, 1)
	assert.Equal(t, "Hops", inputs[0].Good)
	assert.True(t, inputs[0].Amount.Equal(helpers.Dec("2")))
}

func TestSelection_ApplyWorkforce(t *testing.T) {
	tests := []struct {
		name       string
		reductions []string
		expected   map[string]int
	}{
		{"no reduction", nil, map[string]int{"Workers": 30, "Artisans": 9}},
		{"rounds half away from zero", []string{"0.25"}, map[string]int{"Workers": 23, "Artisans": 7}},
		{"summed reductions", []string{"0.3", "0.5"}, map[string]int{"Workers": 6, "Artisans": 2}},
		{"floored at zero", []string{"0.7", "0.7"}, map[string]int{"Workers": 0, "Artisans": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			brewery := newBrewery(t)
			var candidates []*production.Modifier
			for i, reduction := range tt.reductions {
				candidates = append(candidates, mustModifier(production.NewWorkforceReductionModifier(
					string(rune('A'+i)), helpers.Dec(reduction), []string{"Production"})))
			}
			selection := services.NewModifierSelector().Select(brewery, candidates)

			// Act
			workforce, err := selection.ApplyWorkforce(brewery.Workforce, 3)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, workforce)
		})
	}
}

func TestSelection_ApplyWorkforceOverflow(t *testing.T) {
	// Arrange
	brewery := newBrewery(t)
	selection := services.EmptySelection()

	// Act
	workforce, err := selection.ApplyWorkforce(brewery.Workforce, math.MaxInt/2)

	// Assert
	assert.Nil(t, workforce)
	assert.ErrorIs(t, err, services.ErrCountOverflow)
}

func TestModifierSelector_NilBuilding(t *testing.T) {
	selection := services.NewModifierSelector().Select(nil, nil)

	assert.Empty(t, selection.Modifiers)
	assert.True(t, selection.WorkforceReduction().IsZero())
}
