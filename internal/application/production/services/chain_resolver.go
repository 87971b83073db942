package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/application/logging"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// ratePrecision is the number of decimal places kept for propagated rates and
// for quotients before they are rounded up to whole buildings. Repeating
// decimals such as 60/45 would otherwise leave 3.0000000000000001 buildings
// and add a phantom one.
const ratePrecision = 12

// ChainResolver builds production chains for goods.
// It recursively resolves every input of a good's producing building, scaling
// each input to the capacity actually built.
//
// Resolution is a pure function of the catalog and its arguments: the catalog
// is only read, and no state is kept between calls.
type ChainResolver struct {
	catalog  *production.Catalog
	selector *ModifierSelector
}

// NewChainResolver creates a resolver over a populated catalog.
// A nil selector falls back to the default ModifierSelector.
func NewChainResolver(catalog *production.Catalog, selector *ModifierSelector) *ChainResolver {
	if selector == nil {
		selector = NewModifierSelector()
	}
	return &ChainResolver{
		catalog:  catalog,
		selector: selector,
	}
}

// Resolve computes the production chain needed to sustain rate t/min of a good.
//
// The algorithm:
// 1. Raw goods become leaves (they are sourced, not produced)
// 2. Find the unique producing building in the catalog
// 3. Effective rate = base rate x modifier multiplier (multiplier is 1 unless optimized)
// 4. Building count = ceil(rate / effective rate)
// 5. Workforce = per-building workforce x count, reduced when optimized
// 6. Each input is required at count x effective rate x (input / output) and resolved recursively
//
// Any error aborts the whole resolution; no partial tree is returned.
func (r *ChainResolver) Resolve(
	ctx context.Context,
	good string,
	rate decimal.Decimal,
	optimized bool,
) (*production.ChainNode, error) {
	return r.resolveRecursive(ctx, good, rate, optimized, []string{})
}

// resolveRecursive is the internal recursive function for chain resolution.
// path holds the goods currently being resolved on the active recursion path.
func (r *ChainResolver) resolveRecursive(
	ctx context.Context,
	goodName string,
	rate decimal.Decimal,
	optimized bool,
	path []string,
) (*production.ChainNode, error) {
	// Detect cycles
	for _, visiting := range path {
		if visiting == goodName {
			chain := append(append([]string(nil), path...), goodName)
			return nil, &production.CyclicRecipeError{Good: goodName, Chain: chain}
		}
	}

	if !rate.IsPositive() {
		return nil, &production.InvalidRateError{Good: goodName, Rate: rate}
	}

	good, err := r.catalog.Good(goodName)
	if err != nil {
		return nil, err
	}

	if good.IsRaw {
		return production.NewRawChainNode(goodName, rate), nil
	}

	building, err := r.catalog.FindBuildingForGood(goodName)
	if err != nil {
		return nil, err
	}

	// FindBuildingForGood only returns positive producers; this guards the divisor below
	outputAmount := building.Recipe.OutputAmount(goodName)
	if !outputAmount.IsPositive() {
		return nil, &production.InvalidRecipeError{
			Building: building.Name,
			Good:     goodName,
			Reason:   "zero output rate for target good",
		}
	}

	selection := EmptySelection()
	if optimized {
		selection = r.selector.Select(building, r.catalog.ApplicableModifiers(building))
	}

	multiplier := selection.Multiplier(goodName)
	effectiveRate := building.BaseOutputRate(goodName).Mul(multiplier)
	count, err := buildingCount(rate, effectiveRate)
	if err != nil {
		return nil, &production.InvalidRateError{Good: goodName, Rate: rate, Reason: "rate too large"}
	}
	capacity := effectiveRate.Mul(decimal.NewFromInt(int64(count)))

	workforce, err := selection.ApplyWorkforce(building.Workforce, count)
	if err != nil {
		return nil, &production.InvalidRateError{Good: goodName, Rate: rate, Reason: "rate too large"}
	}

	node := &production.ChainNode{
		Good:                goodName,
		RequestedRate:       rate,
		Building:            building,
		BuildingCount:       count,
		AppliedModifiers:    selection.Modifiers,
		Multiplier:          multiplier,
		EffectiveOutputRate: effectiveRate,
		Workforce:           workforce,
	}

	currentPath := append(append([]string(nil), path...), goodName)

	for _, input := range selection.ApplyToInputs(building.Recipe.Inputs) {
		inputRate := capacity.Mul(input.Amount).Div(outputAmount).Round(ratePrecision)
		node.Inputs = append(node.Inputs, production.GoodRate{Good: input.Good, Rate: inputRate})

		child, err := r.resolveRecursive(ctx, input.Good, inputRate, optimized, currentPath)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelDebug, "Resolved production node", map[string]interface{}{
		"good":           goodName,
		"building":       building.Name,
		"building_count": count,
		"requested_rate": rate.String(),
		"effective_rate": effectiveRate.Round(ratePrecision).String(),
		"modifiers":      node.ModifierNames(),
		"optimized":      optimized,
	})

	return node, nil
}

// buildingCount rounds rate / effectiveRate up to whole buildings
func buildingCount(rate, effectiveRate decimal.Decimal) (int, error) {
	count := rate.Div(effectiveRate).Round(ratePrecision).Ceil()
	if count.GreaterThan(maxInt) {
		return 0, ErrCountOverflow
	}
	return int(count.IntPart()), nil
}
