package production

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GoodRate is a rate of a good in tons per minute
type GoodRate struct {
	Good string
	Rate decimal.Decimal
}

// ChainNode is the result of resolving one good in a production chain.
// This is a recursive structure: each child is the chain for one required input.
//
// Nodes are created fresh by every resolution and owned by the result tree.
// Building is a shared, read-only reference into the catalog.
type ChainNode struct {
	Good          string
	IsRaw         bool
	RequestedRate decimal.Decimal

	// Producing building (nil for raw goods)
	Building *ProductionBuilding

	// Number of buildings, always rounded up
	BuildingCount int

	// Modifiers selected for the building, in catalog order
	AppliedModifiers []*Modifier

	// Output multiplier applied to the base rate (1 when not optimized)
	Multiplier decimal.Decimal

	// Output of Good per building in t/min after modifiers
	EffectiveOutputRate decimal.Decimal

	// Workforce for all BuildingCount buildings, keyed by workforce type
	Workforce map[string]int

	// Input requirements for the built capacity, in recipe order
	Inputs []GoodRate

	Children []*ChainNode
}

// NewRawChainNode creates a leaf for a sourced raw good
func NewRawChainNode(good string, rate decimal.Decimal) *ChainNode {
	return &ChainNode{
		Good:          good,
		IsRaw:         true,
		RequestedRate: rate,
		Multiplier:    decimal.NewFromInt(1),
		Workforce:     map[string]int{},
	}
}

// AddChild adds a child node for one of this node's inputs
func (n *ChainNode) AddChild(child *ChainNode) {
	n.Children = append(n.Children, child)
}

// IsLeaf returns true if the node has no inputs to resolve
func (n *ChainNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Capacity returns the rate the built buildings can actually deliver
func (n *ChainNode) Capacity() decimal.Decimal {
	if n.IsRaw {
		return n.RequestedRate
	}
	return n.EffectiveOutputRate.Mul(decimal.NewFromInt(int64(n.BuildingCount)))
}

// Surplus returns how much the built capacity exceeds the request because
// building counts are rounded up
func (n *ChainNode) Surplus() decimal.Decimal {
	return n.Capacity().Sub(n.RequestedRate)
}

// Locations returns where the producing building can be placed (nil for raw goods)
func (n *ChainNode) Locations() []Location {
	if n.Building == nil {
		return nil
	}
	return append([]Location(nil), n.Building.Locations...)
}

// ModifierNames returns the names of the applied modifiers
func (n *ChainNode) ModifierNames() []string {
	names := make([]string, 0, len(n.AppliedModifiers))
	for _, m := range n.AppliedModifiers {
		names = append(names, m.Name)
	}
	return names
}

// Walk visits every node depth-first, parents before children
func (n *ChainNode) Walk(visit func(node *ChainNode, depth int)) {
	n.walk(visit, 0)
}

func (n *ChainNode) walk(visit func(node *ChainNode, depth int), depth int) {
	visit(n, depth)
	for _, child := range n.Children {
		child.walk(visit, depth+1)
	}
}

// FlattenToList returns every node in pre-order.
// The same good may appear more than once when several branches need it;
// each occurrence carries its own rate and buildings.
func (n *ChainNode) FlattenToList() []*ChainNode {
	result := make([]*ChainNode, 0)
	n.Walk(func(node *ChainNode, _ int) {
		result = append(result, node)
	})
	return result
}

// TotalDepth returns the maximum depth of the tree from this node
func (n *ChainNode) TotalDepth() int {
	if n.IsLeaf() {
		return 1
	}

	maxChildDepth := 0
	for _, child := range n.Children {
		if depth := child.TotalDepth(); depth > maxChildDepth {
			maxChildDepth = depth
		}
	}
	return maxChildDepth + 1
}

// CountNodes returns the total number of nodes in the tree
func (n *ChainNode) CountNodes() int {
	return len(n.FlattenToList())
}

// TotalBuildings sums building counts over the whole tree
func (n *ChainNode) TotalBuildings() int {
	total := 0
	n.Walk(func(node *ChainNode, _ int) {
		total += node.BuildingCount
	})
	return total
}

// BuildingsByType sums building counts per building name
func (n *ChainNode) BuildingsByType() map[string]int {
	result := make(map[string]int)
	n.Walk(func(node *ChainNode, _ int) {
		if node.Building != nil {
			result[node.Building.Name] += node.BuildingCount
		}
	})
	return result
}

// TotalWorkforce sums every workforce type over the whole tree
func (n *ChainNode) TotalWorkforce() int {
	total := 0
	for _, count := range n.WorkforceByType() {
		total += count
	}
	return total
}

// WorkforceByType sums workforce per type over the whole tree
func (n *ChainNode) WorkforceByType() map[string]int {
	result := make(map[string]int)
	n.Walk(func(node *ChainNode, _ int) {
		for workforceType, count := range node.Workforce {
			result[workforceType] += count
		}
	})
	return result
}

// RawInputs sums the required rate of every raw good in the tree
func (n *ChainNode) RawInputs() map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal)
	n.Walk(func(node *ChainNode, _ int) {
		if node.IsRaw {
			result[node.Good] = result[node.Good].Add(node.RequestedRate)
		}
	})
	return result
}

// RequiredRawMaterials returns the unique raw goods of the tree, sorted
func (n *ChainNode) RequiredRawMaterials() []string {
	raw := n.RawInputs()
	result := make([]string, 0, len(raw))
	for good := range raw {
		result = append(result, good)
	}
	sort.Strings(result)
	return result
}
