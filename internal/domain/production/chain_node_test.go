package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

// newBreadChain builds Bread <- Flour <- Grain by hand: 2 Bakeries, 1 Mill
func newBreadChain(t *testing.T) *production.ChainNode {
	t.Helper()

	mill := helpers.NewTestBuilding(t, helpers.BuildingFixture{
		Name: "Mill", Inputs: "Grain:1", Outputs: "Flour:1", Workforce: map[string]int{"Workers": 5},
	})
	bakery := helpers.NewTestBuilding(t, helpers.BuildingFixture{
		Name: "Bakery", Inputs: "Flour:1", Outputs: "Bread:1", Workforce: map[string]int{"Artisans": 10, "Workers": 2},
		Locations: []production.Location{production.LocationOldWorld, production.LocationArctic},
	})

	grain := production.NewRawChainNode("Grain", helpers.Dec("1.5"))
	flour := &production.ChainNode{
		Good: "Flour", RequestedRate: helpers.Dec("1.5"), Building: mill, BuildingCount: 2,
		Multiplier: helpers.Dec("1"), EffectiveOutputRate: helpers.Dec("1"),
		Workforce: map[string]int{"Workers": 10},
	}
	flour.AddChild(grain)
	bread := &production.ChainNode{
		Good: "Bread", RequestedRate: helpers.Dec("1.5"), Building: bakery, BuildingCount: 2,
		Multiplier: helpers.Dec("1"), EffectiveOutputRate: helpers.Dec("1"),
		Workforce: map[string]int{"Artisans": 20, "Workers": 4},
	}
	bread.AddChild(flour)
	return bread
}

func TestChainNode_Aggregates(t *testing.T) {
	// Arrange
	root := newBreadChain(t)

	// Act & Assert
	assert.Equal(t, 3, root.TotalDepth())
	assert.Equal(t, 3, root.CountNodes())
	assert.Equal(t, 4, root.TotalBuildings())
	assert.Equal(t, map[string]int{"Bakery": 2, "Mill": 2}, root.BuildingsByType())
	assert.Equal(t, map[string]int{"Artisans": 20, "Workers": 14}, root.WorkforceByType())
	assert.Equal(t, 34, root.TotalWorkforce())
	assert.Equal(t, []string{"Grain"}, root.RequiredRawMaterials())
	assert.True(t, root.RawInputs()["Grain"].Equal(helpers.Dec("1.5")))
}

func TestChainNode_CapacityAndSurplus(t *testing.T) {
	root := newBreadChain(t)

	assert.True(t, root.Capacity().Equal(helpers.Dec("2")))
	assert.True(t, root.Surplus().Equal(helpers.Dec("0.5")))

	raw := production.NewRawChainNode("Grain", helpers.Dec("3"))
	assert.True(t, raw.Capacity().Equal(helpers.Dec("3")))
	assert.True(t, raw.Surplus().IsZero())
}

func TestChainNode_WalkIsPreOrder(t *testing.T) {
	// Arrange
	root := newBreadChain(t)
	var visited []string
	var depths []int

	// Act
	root.Walk(func(node *production.ChainNode, depth int) {
		visited = append(visited, node.Good)
		depths = append(depths, depth)
	})

	// Assert
	assert.Equal(t, []string{"Bread", "Flour", "Grain"}, visited)
	assert.Equal(t, []int{0, 1, 2}, depths)
}

func TestChainNode_RawLeaf(t *testing.T) {
	leaf := production.NewRawChainNode("Cocoa", helpers.Dec("4"))

	assert.True(t, leaf.IsRaw)
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, 1, leaf.TotalDepth())
	assert.Equal(t, 0, leaf.TotalBuildings())
	assert.Nil(t, leaf.Locations())
	assert.Empty(t, leaf.ModifierNames())
	assert.True(t, leaf.Multiplier.Equal(helpers.Dec("1")))
}

func TestChainNode_Locations(t *testing.T) {
	root := newBreadChain(t)

	assert.Equal(t, []production.Location{production.LocationOldWorld, production.LocationArctic}, root.Locations())
}
