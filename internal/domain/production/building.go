package production

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
)

var secondsPerMinute = decimal.NewFromInt(60)

// ProductionBuilding models a type of production building.
//
// One instance is the template for every placed building of that type;
// the chain resolver only ever reads it.
type ProductionBuilding struct {
	Name             string
	Recipe           *Recipe
	CycleTimeSeconds decimal.Decimal
	Tags             []string
	IsElectrifiable  bool
	// Workforce per building, keyed by workforce type ("Workers", "Artisans", ...)
	Workforce map[string]int
	Locations []Location
}

// NewProductionBuilding validates and creates a building template
func NewProductionBuilding(
	name string,
	recipe *Recipe,
	cycleTimeSeconds decimal.Decimal,
	tags []string,
	isElectrifiable bool,
	workforce map[string]int,
	locations []Location,
) (*ProductionBuilding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("building.name", "must not be empty")
	}
	if recipe == nil {
		return nil, &InvalidRecipeError{Building: name, Reason: "building has no recipe"}
	}
	if !cycleTimeSeconds.IsPositive() {
		return nil, shared.NewValidationError("building.cycle_time_seconds",
			fmt.Sprintf("%s: must be positive, got %s", name, cycleTimeSeconds))
	}
	if len(locations) == 0 {
		return nil, shared.NewValidationError("building.locations",
			fmt.Sprintf("%s: at least one location is required", name))
	}

	workforceCopy := make(map[string]int, len(workforce))
	for workforceType, count := range workforce {
		if count < 0 {
			return nil, shared.NewValidationError("building.workforce",
				fmt.Sprintf("%s: negative %s count %d", name, workforceType, count))
		}
		workforceCopy[workforceType] = count
	}

	return &ProductionBuilding{
		Name:             name,
		Recipe:           recipe,
		CycleTimeSeconds: cycleTimeSeconds,
		Tags:             append([]string(nil), tags...),
		IsElectrifiable:  isElectrifiable,
		Workforce:        workforceCopy,
		Locations:        append([]Location(nil), locations...),
	}, nil
}

// CyclesPerMinute returns how many production cycles complete per minute
func (b *ProductionBuilding) CyclesPerMinute() decimal.Decimal {
	return secondsPerMinute.Div(b.CycleTimeSeconds)
}

// BaseOutputRate returns the unmodified tons/minute of a good produced by one building
func (b *ProductionBuilding) BaseOutputRate(good string) decimal.Decimal {
	return b.Recipe.OutputAmount(good).Mul(secondsPerMinute).Div(b.CycleTimeSeconds)
}

// BaseInputRate returns the unmodified tons/minute of a good consumed by one building
func (b *ProductionBuilding) BaseInputRate(good string) decimal.Decimal {
	return b.Recipe.InputAmount(good).Mul(secondsPerMinute).Div(b.CycleTimeSeconds)
}

// HasTag reports whether the building carries the tag
func (b *ProductionBuilding) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CanBeBuiltIn reports whether the building may be placed at the location
func (b *ProductionBuilding) CanBeBuiltIn(location Location) bool {
	for _, l := range b.Locations {
		if l == location {
			return true
		}
	}
	return false
}

// WorkforceTypes returns the workforce types the building needs, sorted
func (b *ProductionBuilding) WorkforceTypes() []string {
	types := make([]string, 0, len(b.Workforce))
	for workforceType := range b.Workforce {
		types = append(types, workforceType)
	}
	sort.Strings(types)
	return types
}

func (b *ProductionBuilding) String() string {
	return fmt.Sprintf("ProductionBuilding(%s, cycle=%ss, recipe=%s)", b.Name, b.CycleTimeSeconds, b.Recipe)
}
