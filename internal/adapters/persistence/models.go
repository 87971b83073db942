package persistence

import (
	"github.com/shopspring/decimal"
)

// GoodModel represents the goods table
type GoodModel struct {
	Name     string `gorm:"column:name;primaryKey"`
	IsRaw    bool   `gorm:"column:is_raw;not null;default:false"`
	Position int    `gorm:"column:position;not null"` // catalog order
}

func (GoodModel) TableName() string {
	return "goods"
}

// BuildingModel represents the production_buildings table
type BuildingModel struct {
	Name             string          `gorm:"column:name;primaryKey"`
	Position         int             `gorm:"column:position;not null"`
	Inputs           string          `gorm:"column:inputs;type:text"`  // JSON array of {good, amount}
	Outputs          string          `gorm:"column:outputs;type:text"` // JSON array of {good, amount}
	CycleTimeSeconds decimal.Decimal `gorm:"column:cycle_time_seconds;type:text;not null"`
	Tags             string          `gorm:"column:tags;type:text"` // JSON array as text
	IsElectrifiable  bool            `gorm:"column:is_electrifiable;not null;default:false"`
	Workforce        string          `gorm:"column:workforce;type:text"` // JSON object as text
	Locations        string          `gorm:"column:locations;type:text"` // JSON array as text
}

func (BuildingModel) TableName() string {
	return "production_buildings"
}

// ModifierModel represents the modifiers table
type ModifierModel struct {
	Name                string          `gorm:"column:name;primaryKey"`
	Position            int             `gorm:"column:position;not null"`
	Kind                string          `gorm:"column:kind;not null"`
	Magnitude           decimal.Decimal `gorm:"column:magnitude;type:text;not null"`
	Tags                string          `gorm:"column:tags;type:text"` // JSON array as text
	ReplacedGood        string          `gorm:"column:replaced_good"`
	ReplacementGood     string          `gorm:"column:replacement_good"`
	ExtraGood           string          `gorm:"column:extra_good"`
	CycleInterval       int             `gorm:"column:cycle_interval;not null;default:0"`
	RequiresElectricity bool            `gorm:"column:requires_electricity;not null;default:false"`
}

func (ModifierModel) TableName() string {
	return "modifiers"
}

// goodAmountRecord is the JSON shape of one recipe line
type goodAmountRecord struct {
	Good   string          `json:"good"`
	Amount decimal.Decimal `json:"amount"`
}
