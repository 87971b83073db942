package catalogfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// FromCatalog converts a domain catalog into its file representation
func FromCatalog(catalog *production.Catalog) *Document {
	doc := &Document{}

	for _, good := range catalog.Goods() {
		doc.Goods = append(doc.Goods, GoodDocument{Name: good.Name, Raw: good.IsRaw})
	}

	for _, building := range catalog.Buildings() {
		locations := make([]string, 0, len(building.Locations))
		for _, location := range building.Locations {
			locations = append(locations, location.String())
		}
		var workforce map[string]int
		if len(building.Workforce) > 0 {
			workforce = building.Workforce
		}
		doc.Buildings = append(doc.Buildings, BuildingDocument{
			Name:             building.Name,
			Inputs:           fromAmounts(building.Recipe.Inputs),
			Outputs:          fromAmounts(building.Recipe.Outputs),
			CycleTimeSeconds: building.CycleTimeSeconds.String(),
			Tags:             building.Tags,
			Electrifiable:    building.IsElectrifiable,
			Workforce:        workforce,
			Locations:        locations,
		})
	}

	for _, modifier := range catalog.Modifiers() {
		doc.Modifiers = append(doc.Modifiers, ModifierDocument{
			Name:                modifier.Name,
			Kind:                string(modifier.Kind),
			Magnitude:           modifier.Magnitude.String(),
			Tags:                modifier.Tags,
			Replaced:            modifier.ReplacedGood,
			Replacement:         modifier.ReplacementGood,
			ExtraGood:           modifier.ExtraGood,
			CycleInterval:       modifier.CycleInterval,
			RequiresElectricity: modifier.RequiresElectricity,
		})
	}

	return doc
}

// EncodeCatalog renders a catalog as YAML that ParseCatalog accepts
func EncodeCatalog(catalog *production.Catalog) ([]byte, error) {
	data, err := yaml.Marshal(FromCatalog(catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return data, nil
}

func fromAmounts(amounts []production.GoodAmount) []AmountDocument {
	if len(amounts) == 0 {
		return nil
	}
	docs := make([]AmountDocument, 0, len(amounts))
	for _, amount := range amounts {
		docs = append(docs, AmountDocument{Good: amount.Good, Amount: amount.Amount.String()})
	}
	return docs
}
