package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

var hundred = decimal.NewFromInt(100)

// ChainSummary aggregates a finished chain
type ChainSummary struct {
	Good            string
	RequestedRate   decimal.Decimal
	TotalBuildings  int
	BuildingsByType map[string]int
	TotalWorkforce  int
	WorkforceByType map[string]int
	RawInputs       map[string]decimal.Decimal
	Depth           int
	NodeCount       int
}

// WorkforceDelta compares one workforce type between two scenarios
type WorkforceDelta struct {
	Type             string
	Base             int
	Optimized        int
	Saved            int
	ReductionPercent decimal.Decimal
}

// ScenarioComparison compares a base chain with an optimized chain for the same target
type ScenarioComparison struct {
	BaseBuildings         int
	OptimizedBuildings    int
	BuildingsSaved        int
	EfficiencyImprovement decimal.Decimal // percent of base buildings saved

	BaseWorkforce      int
	OptimizedWorkforce int
	WorkforceSaved     int
	WorkforceReduction decimal.Decimal // percent of base workforce saved

	WorkforceByType []WorkforceDelta // sorted by type
}

// ProductionTier groups goods at the same distance from raw materials
type ProductionTier struct {
	Nodes []*production.ChainNode
	Depth int // 0 = raw materials, increases toward the target good
}

// ChainAnalyzer runs read-only analyses over finished chains.
// Nothing here re-derives a calculation; it only walks the tree.
type ChainAnalyzer struct{}

// NewChainAnalyzer creates a new chain analyzer
func NewChainAnalyzer() *ChainAnalyzer {
	return &ChainAnalyzer{}
}

// Summarize aggregates building, workforce and raw input totals
func (a *ChainAnalyzer) Summarize(root *production.ChainNode) ChainSummary {
	if root == nil {
		return ChainSummary{}
	}

	return ChainSummary{
		Good:            root.Good,
		RequestedRate:   root.RequestedRate,
		TotalBuildings:  root.TotalBuildings(),
		BuildingsByType: root.BuildingsByType(),
		TotalWorkforce:  root.TotalWorkforce(),
		WorkforceByType: root.WorkforceByType(),
		RawInputs:       root.RawInputs(),
		Depth:           root.TotalDepth(),
		NodeCount:       root.CountNodes(),
	}
}

// Compare reports what the optimized chain saves relative to the base chain
func (a *ChainAnalyzer) Compare(base, optimized *production.ChainNode) ScenarioComparison {
	baseSummary := a.Summarize(base)
	optimizedSummary := a.Summarize(optimized)

	comparison := ScenarioComparison{
		BaseBuildings:      baseSummary.TotalBuildings,
		OptimizedBuildings: optimizedSummary.TotalBuildings,
		BuildingsSaved:     baseSummary.TotalBuildings - optimizedSummary.TotalBuildings,
		BaseWorkforce:      baseSummary.TotalWorkforce,
		OptimizedWorkforce: optimizedSummary.TotalWorkforce,
		WorkforceSaved:     baseSummary.TotalWorkforce - optimizedSummary.TotalWorkforce,
	}
	comparison.EfficiencyImprovement = percentOf(comparison.BuildingsSaved, comparison.BaseBuildings)
	comparison.WorkforceReduction = percentOf(comparison.WorkforceSaved, comparison.BaseWorkforce)

	types := make(map[string]bool)
	for workforceType := range baseSummary.WorkforceByType {
		types[workforceType] = true
	}
	for workforceType := range optimizedSummary.WorkforceByType {
		types[workforceType] = true
	}

	names := make([]string, 0, len(types))
	for workforceType := range types {
		names = append(names, workforceType)
	}
	sort.Strings(names)

	for _, workforceType := range names {
		baseCount := baseSummary.WorkforceByType[workforceType]
		optimizedCount := optimizedSummary.WorkforceByType[workforceType]
		if baseCount == 0 && optimizedCount == 0 {
			continue
		}
		comparison.WorkforceByType = append(comparison.WorkforceByType, WorkforceDelta{
			Type:             workforceType,
			Base:             baseCount,
			Optimized:        optimizedCount,
			Saved:            baseCount - optimizedCount,
			ReductionPercent: percentOf(baseCount-optimizedCount, baseCount),
		})
	}

	return comparison
}

func percentOf(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))).Round(1)
}

// IdentifyProductionTiers groups goods by distance from raw materials.
// Returns tiers ordered from raw materials to the target good (build order).
//
// Example tree:
//
//	Bread (tier 2)
//	└── Flour (tier 1)
//	    └── Grain (tier 0)
//
// A good needed by several branches appears once, in the first position it is met.
func (a *ChainAnalyzer) IdentifyProductionTiers(root *production.ChainNode) []ProductionTier {
	if root == nil {
		return nil
	}

	depthMap := make(map[string]int)
	a.computeDepths(root, depthMap)

	levelMap := make(map[int][]*production.ChainNode)
	seen := make(map[string]bool)
	maxDepth := 0
	root.Walk(func(node *production.ChainNode, _ int) {
		if seen[node.Good] {
			return
		}
		seen[node.Good] = true

		depth := depthMap[node.Good]
		levelMap[depth] = append(levelMap[depth], node)
		if depth > maxDepth {
			maxDepth = depth
		}
	})

	result := make([]ProductionTier, 0, maxDepth+1)
	for depth := 0; depth <= maxDepth; depth++ {
		if nodes, exists := levelMap[depth]; exists {
			result = append(result, ProductionTier{Nodes: nodes, Depth: depth})
		}
	}
	return result
}

// computeDepths calculates the depth of each good from the leaves:
// leaves are 0, other nodes are max(child depths) + 1
func (a *ChainAnalyzer) computeDepths(node *production.ChainNode, depthMap map[string]int) int {
	if depth, exists := depthMap[node.Good]; exists {
		return depth
	}

	if node.IsLeaf() {
		depthMap[node.Good] = 0
		return 0
	}

	maxChildDepth := 0
	for _, child := range node.Children {
		if childDepth := a.computeDepths(child, depthMap); childDepth > maxChildDepth {
			maxChildDepth = childDepth
		}
	}

	depth := maxChildDepth + 1
	depthMap[node.Good] = depth
	return depth
}
