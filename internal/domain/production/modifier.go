package production

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
)

// ModifierKind identifies which effect a modifier has on a building
type ModifierKind string

const (
	// ModifierProductivity adds a fractional bonus to output speed (0.5 = +50%)
	ModifierProductivity ModifierKind = "PRODUCTIVITY"

	// ModifierInputReplacement swaps one input good for another at the same rate
	ModifierInputReplacement ModifierKind = "INPUT_REPLACEMENT"

	// ModifierExtraOutput yields Magnitude extra units every CycleInterval cycles
	ModifierExtraOutput ModifierKind = "EXTRA_OUTPUT"

	// ModifierWorkforceReduction lowers the workforce requirement (0.3 = -30%)
	ModifierWorkforceReduction ModifierKind = "WORKFORCE_REDUCTION"
)

// ParseModifierKind parses a kind name case-insensitively
func ParseModifierKind(value string) (ModifierKind, error) {
	kind := ModifierKind(strings.ToUpper(strings.TrimSpace(value)))
	switch kind {
	case ModifierProductivity, ModifierInputReplacement, ModifierExtraOutput, ModifierWorkforceReduction:
		return kind, nil
	}
	return "", fmt.Errorf("unknown modifier kind %q", value)
}

// Modifier is a catalog-defined bonus (item, electricity, policy, ...) that applies
// to every building sharing at least one of its tags.
//
// Kind-specific payload:
//   - InputReplacement: ReplacedGood is swapped for ReplacementGood; Magnitude
//     ranks competing replacements for the same input.
//   - ExtraOutput: ExtraGood (empty means every output) gains Magnitude units
//     every CycleInterval cycles.
type Modifier struct {
	Name      string
	Kind      ModifierKind
	Magnitude decimal.Decimal
	Tags      []string

	ReplacedGood    string
	ReplacementGood string

	ExtraGood     string
	CycleInterval int

	// RequiresElectricity restricts the modifier to electrifiable buildings
	RequiresElectricity bool
}

// ModifierOption sets kind-specific payload on a modifier under construction
type ModifierOption func(*Modifier)

// WithReplacement sets the replaced and replacement goods of an InputReplacement modifier
func WithReplacement(replaced, replacement string) ModifierOption {
	return func(m *Modifier) {
		m.ReplacedGood = strings.TrimSpace(replaced)
		m.ReplacementGood = strings.TrimSpace(replacement)
	}
}

// WithExtraOutput sets the bonus good and interval of an ExtraOutput modifier
func WithExtraOutput(good string, cycleInterval int) ModifierOption {
	return func(m *Modifier) {
		m.ExtraGood = strings.TrimSpace(good)
		m.CycleInterval = cycleInterval
	}
}

// RequiringElectricity marks the modifier as only applicable to electrifiable buildings
func RequiringElectricity() ModifierOption {
	return func(m *Modifier) {
		m.RequiresElectricity = true
	}
}

// NewModifier validates and creates a modifier of any kind
func NewModifier(
	name string,
	kind ModifierKind,
	magnitude decimal.Decimal,
	tags []string,
	opts ...ModifierOption,
) (*Modifier, error) {
	m := &Modifier{
		Name:      strings.TrimSpace(name),
		Kind:      kind,
		Magnitude: magnitude,
		Tags:      append([]string(nil), tags...),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewProductivityModifier creates a +bonus productivity modifier
func NewProductivityModifier(name string, bonus decimal.Decimal, tags []string, opts ...ModifierOption) (*Modifier, error) {
	return NewModifier(name, ModifierProductivity, bonus, tags, opts...)
}

// NewInputReplacementModifier creates a modifier swapping replaced for replacement
func NewInputReplacementModifier(name, replaced, replacement string, priority decimal.Decimal, tags []string) (*Modifier, error) {
	return NewModifier(name, ModifierInputReplacement, priority, tags, WithReplacement(replaced, replacement))
}

// NewExtraOutputModifier creates a modifier yielding amount extra units of good every interval cycles
func NewExtraOutputModifier(name, good string, amount decimal.Decimal, interval int, tags []string) (*Modifier, error) {
	return NewModifier(name, ModifierExtraOutput, amount, tags, WithExtraOutput(good, interval))
}

// NewWorkforceReductionModifier creates a modifier reducing workforce by the given fraction
func NewWorkforceReductionModifier(name string, reduction decimal.Decimal, tags []string) (*Modifier, error) {
	return NewModifier(name, ModifierWorkforceReduction, reduction, tags)
}

func (m *Modifier) validate() error {
	if m.Name == "" {
		return shared.NewValidationError("modifier.name", "must not be empty")
	}
	if len(m.Tags) == 0 {
		return shared.NewValidationError("modifier.tags", fmt.Sprintf("%s: at least one tag is required", m.Name))
	}
	if !m.Magnitude.IsPositive() {
		return shared.NewValidationError("modifier.magnitude",
			fmt.Sprintf("%s: must be positive, got %s", m.Name, m.Magnitude))
	}

	switch m.Kind {
	case ModifierProductivity:
	case ModifierInputReplacement:
		if m.ReplacedGood == "" || m.ReplacementGood == "" {
			return shared.NewValidationError("modifier.replacement",
				fmt.Sprintf("%s: replaced and replacement goods are required", m.Name))
		}
		if m.ReplacedGood == m.ReplacementGood {
			return shared.NewValidationError("modifier.replacement",
				fmt.Sprintf("%s: %s cannot replace itself", m.Name, m.ReplacedGood))
		}
	case ModifierExtraOutput:
		if m.CycleInterval < 1 {
			return shared.NewValidationError("modifier.cycle_interval",
				fmt.Sprintf("%s: must be at least 1, got %d", m.Name, m.CycleInterval))
		}
	case ModifierWorkforceReduction:
		if m.Magnitude.GreaterThan(decimal.NewFromInt(1)) {
			return shared.NewValidationError("modifier.magnitude",
				fmt.Sprintf("%s: workforce reduction cannot exceed 100%%, got %s", m.Name, m.Magnitude))
		}
	default:
		return shared.NewValidationError("modifier.kind", fmt.Sprintf("%s: unknown kind %q", m.Name, m.Kind))
	}

	return nil
}

// AppliesTo reports whether the modifier can be used on the building:
// at least one shared tag, and electricity only where the building can take it.
func (m *Modifier) AppliesTo(building *ProductionBuilding) bool {
	if building == nil {
		return false
	}
	if m.RequiresElectricity && !building.IsElectrifiable {
		return false
	}
	for _, tag := range m.Tags {
		if building.HasTag(tag) {
			return true
		}
	}
	return false
}

// OutputBonus returns the additive output term contributed by the modifier.
// Productivity contributes its magnitude; ExtraOutput contributes magnitude / interval.
// Other kinds do not change output.
func (m *Modifier) OutputBonus() decimal.Decimal {
	switch m.Kind {
	case ModifierProductivity:
		return m.Magnitude
	case ModifierExtraOutput:
		return m.Magnitude.Div(decimal.NewFromInt(int64(m.CycleInterval)))
	default:
		return decimal.Zero
	}
}

// BoostsOutput reports whether an ExtraOutput modifier adds to the given good
func (m *Modifier) BoostsOutput(good string) bool {
	return m.Kind == ModifierExtraOutput && (m.ExtraGood == "" || m.ExtraGood == good)
}

func (m *Modifier) String() string {
	return fmt.Sprintf("Modifier(%s, %s %s, tags=%v)", m.Name, m.Kind, m.Magnitude, m.Tags)
}
