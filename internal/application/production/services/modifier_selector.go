package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

var (
	one    = decimal.NewFromInt(1)
	maxInt = decimal.NewFromInt(int64(math.MaxInt))
)

// ErrCountOverflow is returned when a building or workforce count does not fit in an int
var ErrCountOverflow = errors.New("count exceeds the int range")

// Selection is the set of modifiers chosen for one building and the combined
// effect they have on it.
//
// Effects of every kind are additive terms on the single base rate:
// three +10% productivity modifiers give +30%, and an extra output of 1 every
// 4 cycles adds another +25% on top, for a 1.55x multiplier.
type Selection struct {
	// Selected modifiers, in catalog order
	Modifiers []*production.Modifier

	// Replacements keyed by the replaced input good
	Replacements map[string]*production.Modifier

	productivityBonus  decimal.Decimal
	workforceReduction decimal.Decimal
	extraOutputs       []*production.Modifier
}

// EmptySelection is the selection used when a chain is not optimized
func EmptySelection() *Selection {
	return &Selection{
		Modifiers:    []*production.Modifier{},
		Replacements: map[string]*production.Modifier{},
	}
}

// ProductivityBonus returns the summed productivity bonus (0.25 = +25%)
func (s *Selection) ProductivityBonus() decimal.Decimal {
	return s.productivityBonus
}

// ExtraOutputBonus returns the summed extra output bonus for a good
func (s *Selection) ExtraOutputBonus(good string) decimal.Decimal {
	bonus := decimal.Zero
	for _, m := range s.extraOutputs {
		if m.BoostsOutput(good) {
			bonus = bonus.Add(m.OutputBonus())
		}
	}
	return bonus
}

// WorkforceReduction returns the summed workforce reduction (0.3 = -30%)
func (s *Selection) WorkforceReduction() decimal.Decimal {
	return s.workforceReduction
}

// Multiplier returns the factor applied once to the base output rate of a good
func (s *Selection) Multiplier(good string) decimal.Decimal {
	return one.Add(s.productivityBonus).Add(s.ExtraOutputBonus(good))
}

// ApplyWorkforce returns the workforce needed by count buildings after reductions.
// Each type is floored at zero and rounded to the nearest integer once the
// reductions have been summed.
func (s *Selection) ApplyWorkforce(perBuilding map[string]int, count int) (map[string]int, error) {
	factor := one.Sub(s.workforceReduction)
	if factor.IsNegative() {
		factor = decimal.Zero
	}

	result := make(map[string]int, len(perBuilding))
	for workforceType, workers := range perBuilding {
		total := decimal.NewFromInt(int64(workers)).
			Mul(decimal.NewFromInt(int64(count))).
			Mul(factor).
			Round(0)
		if total.GreaterThan(maxInt) {
			return nil, fmt.Errorf("%s workforce for %d buildings: %w", workforceType, count, ErrCountOverflow)
		}
		result[workforceType] = int(total.IntPart())
	}
	return result, nil
}

// ApplyToInputs swaps replaced inputs for their replacements at the same amount.
// A replacement that is already an input is merged into that input's slot.
func (s *Selection) ApplyToInputs(inputs []production.GoodAmount) []production.GoodAmount {
	result := make([]production.GoodAmount, 0, len(inputs))
	index := make(map[string]int, len(inputs))

	for _, input := range inputs {
		good := input.Good
		if m, replaced := s.Replacements[good]; replaced {
			good = m.ReplacementGood
		}

		if i, exists := index[good]; exists {
			result[i].Amount = result[i].Amount.Add(input.Amount)
			continue
		}
		index[good] = len(result)
		result = append(result, production.GoodAmount{Good: good, Amount: input.Amount})
	}
	return result
}

// ModifierSelector picks the modifiers that maximize a building's output per
// building while respecting the compatibility rules of each kind.
type ModifierSelector struct{}

// NewModifierSelector creates a new modifier selector
func NewModifierSelector() *ModifierSelector {
	return &ModifierSelector{}
}

// Select chooses modifiers for the building from the candidates (catalog order).
//
// Rules:
//   - Productivity: every applicable modifier, bonuses summed
//   - ExtraOutput: every modifier whose good the building produces (or any good)
//   - WorkforceReduction: every applicable modifier, reductions summed
//   - InputReplacement: at most one per consumed input; the greater magnitude
//     wins and equal magnitudes keep the one first in catalog order
func (s *ModifierSelector) Select(building *production.ProductionBuilding, candidates []*production.Modifier) *Selection {
	selection := EmptySelection()
	if building == nil {
		return selection
	}

	chosen := make(map[*production.Modifier]bool)
	for _, m := range candidates {
		if !m.AppliesTo(building) {
			continue
		}

		switch m.Kind {
		case production.ModifierProductivity:
			chosen[m] = true
			selection.productivityBonus = selection.productivityBonus.Add(m.Magnitude)

		case production.ModifierExtraOutput:
			if m.ExtraGood != "" && !building.Recipe.Produces(m.ExtraGood) {
				continue
			}
			chosen[m] = true
			selection.extraOutputs = append(selection.extraOutputs, m)

		case production.ModifierWorkforceReduction:
			chosen[m] = true
			selection.workforceReduction = selection.workforceReduction.Add(m.Magnitude)

		case production.ModifierInputReplacement:
			if !building.Recipe.Consumes(m.ReplacedGood) {
				continue
			}
			current, exists := selection.Replacements[m.ReplacedGood]
			if exists && !m.Magnitude.GreaterThan(current.Magnitude) {
				continue
			}
			if exists {
				delete(chosen, current)
			}
			selection.Replacements[m.ReplacedGood] = m
			chosen[m] = true
		}
	}

	for _, m := range candidates {
		if chosen[m] {
			selection.Modifiers = append(selection.Modifiers, m)
		}
	}

	return selection
}
