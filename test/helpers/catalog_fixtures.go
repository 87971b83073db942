package helpers

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// Dec parses a decimal literal, panicking on malformed test input
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Amounts parses "Grain:1, Sugar:0.5" into recipe lines, keeping order
func Amounts(list string) []production.GoodAmount {
	var amounts []production.GoodAmount
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, ":")
		amounts = append(amounts, production.GoodAmount{
			Good:   strings.TrimSpace(part[:idx]),
			Amount: Dec(strings.TrimSpace(part[idx+1:])),
		})
	}
	return amounts
}

// BuildingFixture describes a building for NewTestBuilding; zero values get defaults
type BuildingFixture struct {
	Name          string
	Inputs        string
	Outputs       string
	CycleTime     string
	Tags          []string
	Electrifiable bool
	Workforce     map[string]int
	Locations     []production.Location
}

// NewTestBuilding builds a production building from a fixture
func NewTestBuilding(t *testing.T, fixture BuildingFixture) *production.ProductionBuilding {
	t.Helper()

	recipe, err := production.NewRecipe(Amounts(fixture.Inputs), Amounts(fixture.Outputs))
	require.NoError(t, err)

	cycleTime := fixture.CycleTime
	if cycleTime == "" {
		cycleTime = "60"
	}
	locations := fixture.Locations
	if len(locations) == 0 {
		locations = []production.Location{production.LocationOldWorld}
	}

	building, err := production.NewProductionBuilding(
		fixture.Name,
		recipe,
		Dec(cycleTime),
		fixture.Tags,
		fixture.Electrifiable,
		fixture.Workforce,
		locations,
	)
	require.NoError(t, err)
	return building
}

// MustAddGoods registers goods; names ending in "*" are raw ("Grain*")
func MustAddGoods(t *testing.T, catalog *production.Catalog, names ...string) {
	t.Helper()
	for _, name := range names {
		raw := strings.HasSuffix(name, "*")
		good, err := production.NewGood(strings.TrimSuffix(name, "*"), raw)
		require.NoError(t, err)
		require.NoError(t, catalog.AddGood(good))
	}
}

// NewFlourCatalog returns Grain (raw) and Flour made by a Mill turning
// 1 Grain into 1 Flour every 60 seconds with 5 Workers
func NewFlourCatalog(t *testing.T) *production.Catalog {
	t.Helper()

	catalog := production.NewCatalog()
	MustAddGoods(t, catalog, "Grain*", "Flour")
	require.NoError(t, catalog.AddBuilding(NewTestBuilding(t, BuildingFixture{
		Name:          "Mill",
		Inputs:        "Grain:1",
		Outputs:       "Flour:1",
		CycleTime:     "60",
		Tags:          []string{"Production", "Farm"},
		Electrifiable: true,
		Workforce:     map[string]int{"Workers": 5},
	})))
	return catalog
}

// NewDemoCatalog loads the bundled bread and chocolate catalog
func NewDemoCatalog(t *testing.T) *production.Catalog {
	t.Helper()

	catalog, err := catalogfile.NewDemoSource().LoadCatalog(context.Background())
	require.NoError(t, err)
	require.NoError(t, catalog.Validate())
	return catalog
}
