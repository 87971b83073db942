package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func TestProductionBuilding_Rates(t *testing.T) {
	// Arrange
	building := helpers.NewTestBuilding(t, helpers.BuildingFixture{
		Name:      "Mill",
		Inputs:    "Grain:2",
		Outputs:   "Flour:1.5",
		CycleTime: "30",
		Tags:      []string{"Production"},
	})

	// Act & Assert
	assert.True(t, building.CyclesPerMinute().Equal(helpers.Dec("2")))
	assert.True(t, building.BaseOutputRate("Flour").Equal(helpers.Dec("3")))
	assert.True(t, building.BaseInputRate("Grain").Equal(helpers.Dec("4")))
	assert.True(t, building.BaseOutputRate("Bread").IsZero())
}

func TestProductionBuilding_TagsAndLocations(t *testing.T) {
	// Arrange
	building := helpers.NewTestBuilding(t, helpers.BuildingFixture{
		Name:      "Chocolate Factory",
		Inputs:    "Cocoa:1",
		Outputs:   "Chocolate:1",
		Tags:      []string{"Production", "New World"},
		Workforce: map[string]int{"Obreros": 10, "Engineers": 20},
		Locations: []production.Location{production.LocationNewWorld},
	})

	// Act & Assert
	assert.True(t, building.HasTag("New World"))
	assert.False(t, building.HasTag("Old World"))
	assert.True(t, building.CanBeBuiltIn(production.LocationNewWorld))
	assert.False(t, building.CanBeBuiltIn(production.LocationOldWorld))
	assert.Equal(t, []string{"Engineers", "Obreros"}, building.WorkforceTypes())
}

func TestProductionBuilding_CopiesWorkforce(t *testing.T) {
	// Arrange
	workforce := map[string]int{"Workers": 5}
	recipe, err := production.NewRecipe(helpers.Amounts("Grain:1"), helpers.Amounts("Flour:1"))
	require.NoError(t, err)

	// Act
	building, err := production.NewProductionBuilding("Mill", recipe, helpers.Dec("60"), nil, false, workforce,
		[]production.Location{production.LocationOldWorld})
	workforce["Workers"] = 99

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, building.Workforce["Workers"])
}

func TestNewProductionBuilding_Validation(t *testing.T) {
	recipe, err := production.NewRecipe(helpers.Amounts("Grain:1"), helpers.Amounts("Flour:1"))
	require.NoError(t, err)
	oldWorld := []production.Location{production.LocationOldWorld}

	tests := []struct {
		name      string
		building  string
		cycle     string
		workforce map[string]int
		locations []production.Location
		field     string
	}{
		{"blank name", "  ", "60", nil, oldWorld, "building.name"},
		{"zero cycle", "Mill", "0", nil, oldWorld, "building.cycle_time_seconds"},
		{"negative cycle", "Mill", "-5", nil, oldWorld, "building.cycle_time_seconds"},
		{"no locations", "Mill", "60", nil, nil, "building.locations"},
		{"negative workforce", "Mill", "60", map[string]int{"Workers": -1}, oldWorld, "building.workforce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			building, err := production.NewProductionBuilding(tt.building, recipe, helpers.Dec(tt.cycle), nil, false, tt.workforce, tt.locations)

			// Assert
			assert.Nil(t, building)
			var validationErr *shared.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestNewProductionBuilding_RequiresRecipe(t *testing.T) {
	// Act
	_, err := production.NewProductionBuilding("Mill", nil, helpers.Dec("60"), nil, false, nil,
		[]production.Location{production.LocationOldWorld})

	// Assert
	var recipeErr *production.InvalidRecipeError
	assert.ErrorAs(t, err, &recipeErr)
}
