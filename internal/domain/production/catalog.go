package production

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
)

// Catalog is the registry of goods, buildings and modifiers, keyed by name.
//
// It is populated once by a loader and then only read; the chain resolver never
// mutates it, so a populated catalog may be shared by concurrent resolutions.
// Registration order is preserved and used as the tie-break order for modifiers.
type Catalog struct {
	goods     map[string]*Good
	goodOrder []*Good

	buildings     map[string]*ProductionBuilding
	buildingOrder []*ProductionBuilding

	modifiers     map[string]*Modifier
	modifierOrder []*Modifier
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		goods:     make(map[string]*Good),
		buildings: make(map[string]*ProductionBuilding),
		modifiers: make(map[string]*Modifier),
	}
}

// AddGood registers a good
func (c *Catalog) AddGood(good *Good) error {
	if good == nil {
		return shared.NewValidationError("good", "cannot be nil")
	}
	if _, exists := c.goods[good.Name]; exists {
		return &DuplicateKeyError{Kind: "good", Name: good.Name}
	}
	c.goods[good.Name] = good
	c.goodOrder = append(c.goodOrder, good)
	return nil
}

// AddBuilding registers a building template
func (c *Catalog) AddBuilding(building *ProductionBuilding) error {
	if building == nil {
		return shared.NewValidationError("building", "cannot be nil")
	}
	if _, exists := c.buildings[building.Name]; exists {
		return &DuplicateKeyError{Kind: "building", Name: building.Name}
	}
	c.buildings[building.Name] = building
	c.buildingOrder = append(c.buildingOrder, building)
	return nil
}

// AddModifier registers a modifier
func (c *Catalog) AddModifier(modifier *Modifier) error {
	if modifier == nil {
		return shared.NewValidationError("modifier", "cannot be nil")
	}
	if _, exists := c.modifiers[modifier.Name]; exists {
		return &DuplicateKeyError{Kind: "modifier", Name: modifier.Name}
	}
	c.modifiers[modifier.Name] = modifier
	c.modifierOrder = append(c.modifierOrder, modifier)
	return nil
}

// Good returns a registered good
func (c *Catalog) Good(name string) (*Good, error) {
	good, exists := c.goods[name]
	if !exists {
		return nil, &UnknownGoodError{Good: name}
	}
	return good, nil
}

// Building returns a registered building
func (c *Catalog) Building(name string) (*ProductionBuilding, bool) {
	building, exists := c.buildings[name]
	return building, exists
}

// Modifier returns a registered modifier
func (c *Catalog) Modifier(name string) (*Modifier, bool) {
	modifier, exists := c.modifiers[name]
	return modifier, exists
}

// Goods returns all goods in registration order
func (c *Catalog) Goods() []*Good {
	return append([]*Good(nil), c.goodOrder...)
}

// Buildings returns all buildings in registration order
func (c *Catalog) Buildings() []*ProductionBuilding {
	return append([]*ProductionBuilding(nil), c.buildingOrder...)
}

// Modifiers returns all modifiers in registration order
func (c *Catalog) Modifiers() []*Modifier {
	return append([]*Modifier(nil), c.modifierOrder...)
}

// FindBuildingForGood returns the unique building whose recipe outputs the good.
// Zero matches is a NoProducerError, more than one an AmbiguousProducerError;
// the catalog never silently picks one.
func (c *Catalog) FindBuildingForGood(good string) (*ProductionBuilding, error) {
	var producers []*ProductionBuilding
	for _, building := range c.buildingOrder {
		if building.Recipe.Produces(good) {
			producers = append(producers, building)
		}
	}

	switch len(producers) {
	case 0:
		return nil, &NoProducerError{Good: good}
	case 1:
		return producers[0], nil
	default:
		names := make([]string, 0, len(producers))
		for _, p := range producers {
			names = append(names, p.Name)
		}
		return nil, &AmbiguousProducerError{Good: good, Buildings: names}
	}
}

// ApplicableModifiers returns the modifiers usable on the building, in catalog order
func (c *Catalog) ApplicableModifiers(building *ProductionBuilding) []*Modifier {
	var applicable []*Modifier
	for _, modifier := range c.modifierOrder {
		if modifier.AppliesTo(building) {
			applicable = append(applicable, modifier)
		}
	}
	return applicable
}

// Validate checks catalog-wide invariants once loading is complete:
//   - every good named by a recipe or modifier is registered
//   - raw goods have no producing building
//   - every manufactured good has exactly one producing building
//
// All violations are reported together.
func (c *Catalog) Validate() error {
	var errs []error

	for _, building := range c.buildingOrder {
		for _, amount := range append(append([]GoodAmount(nil), building.Recipe.Inputs...), building.Recipe.Outputs...) {
			if _, exists := c.goods[amount.Good]; !exists {
				errs = append(errs, fmt.Errorf("building %s: %w", building.Name, &UnknownGoodError{Good: amount.Good}))
			}
		}
	}

	for _, modifier := range c.modifierOrder {
		for _, good := range []string{modifier.ReplacedGood, modifier.ReplacementGood, modifier.ExtraGood} {
			if good == "" {
				continue
			}
			if _, exists := c.goods[good]; !exists {
				errs = append(errs, fmt.Errorf("modifier %s: %w", modifier.Name, &UnknownGoodError{Good: good}))
			}
		}
	}

	for _, good := range c.goodOrder {
		_, err := c.FindBuildingForGood(good.Name)
		if good.IsRaw {
			var noProducer *NoProducerError
			if !errors.As(err, &noProducer) {
				errs = append(errs, fmt.Errorf("raw good %s must not have a producing building", good.Name))
			}
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
