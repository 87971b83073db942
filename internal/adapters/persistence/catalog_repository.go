package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// GormCatalogRepository stores a production catalog using GORM.
// It is both a production.CatalogSource and a production.CatalogStore.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// LoadCatalog rebuilds the catalog from the goods, production_buildings and
// modifiers tables, preserving the order the catalog was saved in
func (r *GormCatalogRepository) LoadCatalog(ctx context.Context) (*production.Catalog, error) {
	var goods []GoodModel
	if err := r.db.WithContext(ctx).Order("position").Find(&goods).Error; err != nil {
		return nil, fmt.Errorf("failed to list goods: %w", err)
	}

	var buildings []BuildingModel
	if err := r.db.WithContext(ctx).Order("position").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}

	var modifiers []ModifierModel
	if err := r.db.WithContext(ctx).Order("position").Find(&modifiers).Error; err != nil {
		return nil, fmt.Errorf("failed to list modifiers: %w", err)
	}

	catalog := production.NewCatalog()

	for _, model := range goods {
		good, err := production.NewGood(model.Name, model.IsRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to convert good %s: %w", model.Name, err)
		}
		if err := catalog.AddGood(good); err != nil {
			return nil, err
		}
	}

	for i := range buildings {
		building, err := r.modelToBuilding(&buildings[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert building %s: %w", buildings[i].Name, err)
		}
		if err := catalog.AddBuilding(building); err != nil {
			return nil, err
		}
	}

	for i := range modifiers {
		modifier, err := r.modelToModifier(&modifiers[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert modifier %s: %w", modifiers[i].Name, err)
		}
		if err := catalog.AddModifier(modifier); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

// SaveCatalog replaces the stored catalog with the given one in a single transaction
func (r *GormCatalogRepository) SaveCatalog(ctx context.Context, catalog *production.Catalog) error {
	goods := make([]GoodModel, 0, len(catalog.Goods()))
	for i, good := range catalog.Goods() {
		goods = append(goods, GoodModel{Name: good.Name, IsRaw: good.IsRaw, Position: i})
	}

	buildings := make([]BuildingModel, 0, len(catalog.Buildings()))
	for i, building := range catalog.Buildings() {
		model, err := r.buildingToModel(building, i)
		if err != nil {
			return fmt.Errorf("failed to convert building %s to model: %w", building.Name, err)
		}
		buildings = append(buildings, *model)
	}

	modifiers := make([]ModifierModel, 0, len(catalog.Modifiers()))
	for i, modifier := range catalog.Modifiers() {
		model, err := r.modifierToModel(modifier, i)
		if err != nil {
			return fmt.Errorf("failed to convert modifier %s to model: %w", modifier.Name, err)
		}
		modifiers = append(modifiers, *model)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{&ModifierModel{}, &BuildingModel{}, &GoodModel{}} {
			if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear catalog tables: %w", err)
			}
		}
		if len(goods) > 0 {
			if err := tx.Create(&goods).Error; err != nil {
				return fmt.Errorf("failed to save goods: %w", err)
			}
		}
		if len(buildings) > 0 {
			if err := tx.Create(&buildings).Error; err != nil {
				return fmt.Errorf("failed to save buildings: %w", err)
			}
		}
		if len(modifiers) > 0 {
			if err := tx.Create(&modifiers).Error; err != nil {
				return fmt.Errorf("failed to save modifiers: %w", err)
			}
		}
		return nil
	})
}

func (r *GormCatalogRepository) buildingToModel(building *production.ProductionBuilding, position int) (*BuildingModel, error) {
	inputs, err := marshalAmounts(building.Recipe.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := marshalAmounts(building.Recipe.Outputs)
	if err != nil {
		return nil, err
	}
	tags, err := json.Marshal(nonNil(building.Tags))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	workforce, err := json.Marshal(building.Workforce)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workforce: %w", err)
	}
	locations, err := json.Marshal(building.Locations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal locations: %w", err)
	}

	return &BuildingModel{
		Name:             building.Name,
		Position:         position,
		Inputs:           inputs,
		Outputs:          outputs,
		CycleTimeSeconds: building.CycleTimeSeconds,
		Tags:             string(tags),
		IsElectrifiable:  building.IsElectrifiable,
		Workforce:        string(workforce),
		Locations:        string(locations),
	}, nil
}

func (r *GormCatalogRepository) modelToBuilding(model *BuildingModel) (*production.ProductionBuilding, error) {
	inputs, err := unmarshalAmounts(model.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
	}
	outputs, err := unmarshalAmounts(model.Outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal outputs: %w", err)
	}
	recipe, err := production.NewRecipe(inputs, outputs)
	if err != nil {
		return nil, err
	}

	var tags []string
	if model.Tags != "" {
		if err := json.Unmarshal([]byte(model.Tags), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	workforce := make(map[string]int)
	if model.Workforce != "" {
		if err := json.Unmarshal([]byte(model.Workforce), &workforce); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workforce: %w", err)
		}
	}

	var locations []production.Location
	if model.Locations != "" {
		if err := json.Unmarshal([]byte(model.Locations), &locations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal locations: %w", err)
		}
	}

	return production.NewProductionBuilding(
		model.Name,
		recipe,
		model.CycleTimeSeconds,
		tags,
		model.IsElectrifiable,
		workforce,
		locations,
	)
}

func (r *GormCatalogRepository) modifierToModel(modifier *production.Modifier, position int) (*ModifierModel, error) {
	tags, err := json.Marshal(nonNil(modifier.Tags))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	return &ModifierModel{
		Name:                modifier.Name,
		Position:            position,
		Kind:                string(modifier.Kind),
		Magnitude:           modifier.Magnitude,
		Tags:                string(tags),
		ReplacedGood:        modifier.ReplacedGood,
		ReplacementGood:     modifier.ReplacementGood,
		ExtraGood:           modifier.ExtraGood,
		CycleInterval:       modifier.CycleInterval,
		RequiresElectricity: modifier.RequiresElectricity,
	}, nil
}

func (r *GormCatalogRepository) modelToModifier(model *ModifierModel) (*production.Modifier, error) {
	kind, err := production.ParseModifierKind(model.Kind)
	if err != nil {
		return nil, err
	}

	var tags []string
	if model.Tags != "" {
		if err := json.Unmarshal([]byte(model.Tags), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	var opts []production.ModifierOption
	switch kind {
	case production.ModifierInputReplacement:
		opts = append(opts, production.WithReplacement(model.ReplacedGood, model.ReplacementGood))
	case production.ModifierExtraOutput:
		opts = append(opts, production.WithExtraOutput(model.ExtraGood, model.CycleInterval))
	}
	if model.RequiresElectricity {
		opts = append(opts, production.RequiringElectricity())
	}

	return production.NewModifier(model.Name, kind, model.Magnitude, tags, opts...)
}

func marshalAmounts(amounts []production.GoodAmount) (string, error) {
	records := make([]goodAmountRecord, 0, len(amounts))
	for _, amount := range amounts {
		records = append(records, goodAmountRecord{Good: amount.Good, Amount: amount.Amount})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal recipe amounts: %w", err)
	}
	return string(data), nil
}

func unmarshalAmounts(data string) ([]production.GoodAmount, error) {
	if data == "" {
		return nil, nil
	}
	var records []goodAmountRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	amounts := make([]production.GoodAmount, 0, len(records))
	for _, record := range records {
		amounts = append(amounts, production.GoodAmount{Good: record.Good, Amount: record.Amount})
	}
	return amounts, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
