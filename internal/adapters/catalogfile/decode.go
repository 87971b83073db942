package catalogfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

var documentValidator = validator.New()

// ParseCatalog decodes a YAML catalog and builds the domain catalog from it.
// Unknown fields are rejected. The result is not cross-checked; call
// Catalog.Validate before resolving chains.
func ParseCatalog(data []byte) (*production.Catalog, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := documentValidator.Struct(&doc); err != nil {
		return nil, formatDocumentError(err)
	}

	return doc.ToCatalog()
}

// ToCatalog converts the document into a domain catalog
func (d *Document) ToCatalog() (*production.Catalog, error) {
	catalog := production.NewCatalog()

	for _, g := range d.Goods {
		good, err := production.NewGood(g.Name, g.Raw)
		if err != nil {
			return nil, err
		}
		if err := catalog.AddGood(good); err != nil {
			return nil, err
		}
	}

	for i := range d.Buildings {
		building, err := d.Buildings[i].toBuilding()
		if err != nil {
			return nil, fmt.Errorf("building %q: %w", d.Buildings[i].Name, err)
		}
		if err := catalog.AddBuilding(building); err != nil {
			return nil, err
		}
	}

	for i := range d.Modifiers {
		modifier, err := d.Modifiers[i].toModifier()
		if err != nil {
			return nil, fmt.Errorf("modifier %q: %w", d.Modifiers[i].Name, err)
		}
		if err := catalog.AddModifier(modifier); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

func (b *BuildingDocument) toBuilding() (*production.ProductionBuilding, error) {
	inputs, err := toAmounts(b.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := toAmounts(b.Outputs)
	if err != nil {
		return nil, err
	}
	recipe, err := production.NewRecipe(inputs, outputs)
	if err != nil {
		return nil, err
	}

	cycleTime, err := decimal.NewFromString(b.CycleTimeSeconds)
	if err != nil {
		return nil, fmt.Errorf("invalid cycle_time_seconds %q: %w", b.CycleTimeSeconds, err)
	}

	locations := make([]production.Location, 0, len(b.Locations))
	for _, raw := range b.Locations {
		location, err := production.ParseLocation(raw)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	return production.NewProductionBuilding(
		b.Name,
		recipe,
		cycleTime,
		b.Tags,
		b.Electrifiable,
		b.Workforce,
		locations,
	)
}

func (m *ModifierDocument) toModifier() (*production.Modifier, error) {
	kind, err := production.ParseModifierKind(m.Kind)
	if err != nil {
		return nil, err
	}

	magnitude, err := decimal.NewFromString(m.Magnitude)
	if err != nil {
		return nil, fmt.Errorf("invalid magnitude %q: %w", m.Magnitude, err)
	}

	var opts []production.ModifierOption
	switch kind {
	case production.ModifierInputReplacement:
		opts = append(opts, production.WithReplacement(m.Replaced, m.Replacement))
	case production.ModifierExtraOutput:
		interval := m.CycleInterval
		if interval == 0 {
			interval = 1
		}
		opts = append(opts, production.WithExtraOutput(m.ExtraGood, interval))
	}
	if m.RequiresElectricity {
		opts = append(opts, production.RequiringElectricity())
	}

	return production.NewModifier(m.Name, kind, magnitude, m.Tags, opts...)
}

func toAmounts(docs []AmountDocument) ([]production.GoodAmount, error) {
	amounts := make([]production.GoodAmount, 0, len(docs))
	for _, doc := range docs {
		amount, err := decimal.NewFromString(doc.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for %s: %w", doc.Amount, doc.Good, err)
		}
		amounts = append(amounts, production.GoodAmount{Good: strings.TrimSpace(doc.Good), Amount: amount})
	}
	return amounts, nil
}

func formatDocumentError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid catalog document:\n  %s", strings.Join(messages, "\n  "))
}
