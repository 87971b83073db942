package production

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GoodAmount is an amount of a good consumed or produced in one production cycle
type GoodAmount struct {
	Good   string
	Amount decimal.Decimal
}

// Recipe defines a transformation of goods per production cycle.
//
// Amounts are per cycle; a building's cycle time turns them into tons per minute.
// Inputs and outputs keep the order they were declared in so that reports and
// chain children follow the catalog author's order.
type Recipe struct {
	Inputs  []GoodAmount
	Outputs []GoodAmount
}

// NewRecipe validates and creates a recipe.
// Every amount must be positive, no good may appear twice on one side,
// and at least one output is required.
func NewRecipe(inputs, outputs []GoodAmount) (*Recipe, error) {
	if len(outputs) == 0 {
		return nil, &InvalidRecipeError{Reason: "recipe has no outputs"}
	}
	if err := validateAmounts(inputs, "input"); err != nil {
		return nil, err
	}
	if err := validateAmounts(outputs, "output"); err != nil {
		return nil, err
	}

	return &Recipe{
		Inputs:  append([]GoodAmount(nil), inputs...),
		Outputs: append([]GoodAmount(nil), outputs...),
	}, nil
}

func validateAmounts(amounts []GoodAmount, side string) error {
	seen := make(map[string]bool, len(amounts))
	for _, a := range amounts {
		if strings.TrimSpace(a.Good) == "" {
			return &InvalidRecipeError{Reason: fmt.Sprintf("%s with empty good name", side)}
		}
		if !a.Amount.IsPositive() {
			return &InvalidRecipeError{
				Good:   a.Good,
				Reason: fmt.Sprintf("%s amount must be positive, got %s", side, a.Amount),
			}
		}
		if seen[a.Good] {
			return &InvalidRecipeError{Good: a.Good, Reason: fmt.Sprintf("duplicate %s", side)}
		}
		seen[a.Good] = true
	}
	return nil
}

// InputAmount returns the per-cycle amount of an input, or zero if it is not consumed
func (r *Recipe) InputAmount(good string) decimal.Decimal {
	return findAmount(r.Inputs, good)
}

// OutputAmount returns the per-cycle amount of an output, or zero if it is not produced
func (r *Recipe) OutputAmount(good string) decimal.Decimal {
	return findAmount(r.Outputs, good)
}

// Produces returns true if the good is one of the recipe's outputs
func (r *Recipe) Produces(good string) bool {
	return r.OutputAmount(good).IsPositive()
}

// Consumes returns true if the good is one of the recipe's inputs
func (r *Recipe) Consumes(good string) bool {
	return r.InputAmount(good).IsPositive()
}

func findAmount(amounts []GoodAmount, good string) decimal.Decimal {
	for _, a := range amounts {
		if a.Good == good {
			return a.Amount
		}
	}
	return decimal.Zero
}

func (r *Recipe) String() string {
	return fmt.Sprintf("%s -> %s", formatAmounts(r.Inputs), formatAmounts(r.Outputs))
}

func formatAmounts(amounts []GoodAmount) string {
	if len(amounts) == 0 {
		return "(nothing)"
	}
	parts := make([]string, 0, len(amounts))
	for _, a := range amounts {
		parts = append(parts, fmt.Sprintf("%s %s", a.Amount.String(), a.Good))
	}
	return strings.Join(parts, " + ")
}
