package catalogfile

// Document is the YAML layout of a production catalog file.
//
// Amounts are strings so that values such as 0.1 survive without
// floating point rounding; plain YAML numbers are accepted as well.
type Document struct {
	Goods     []GoodDocument     `yaml:"goods" validate:"dive"`
	Buildings []BuildingDocument `yaml:"buildings" validate:"dive"`
	Modifiers []ModifierDocument `yaml:"modifiers,omitempty" validate:"dive"`
}

// GoodDocument describes one good
type GoodDocument struct {
	Name string `yaml:"name" validate:"required"`
	Raw  bool   `yaml:"raw,omitempty"`
}

// AmountDocument is one recipe line, amounts are per production cycle
type AmountDocument struct {
	Good   string `yaml:"good" validate:"required"`
	Amount string `yaml:"amount" validate:"required,numeric"`
}

// BuildingDocument describes one production building
type BuildingDocument struct {
	Name             string           `yaml:"name" validate:"required"`
	Inputs           []AmountDocument `yaml:"inputs,omitempty" validate:"dive"`
	Outputs          []AmountDocument `yaml:"outputs" validate:"required,min=1,dive"`
	CycleTimeSeconds string           `yaml:"cycle_time_seconds" validate:"required,numeric"`
	Tags             []string         `yaml:"tags,omitempty" validate:"dive,required"`
	Electrifiable    bool             `yaml:"electrifiable,omitempty"`
	Workforce        map[string]int   `yaml:"workforce,omitempty" validate:"dive,keys,required,endkeys,min=0"`
	Locations        []string         `yaml:"locations" validate:"required,min=1,dive,required"`
}

// ModifierDocument describes one modifier. Kind selects which of the
// optional fields are read.
type ModifierDocument struct {
	Name                string   `yaml:"name" validate:"required"`
	Kind                string   `yaml:"kind" validate:"required"`
	Magnitude           string   `yaml:"magnitude" validate:"required,numeric"`
	Tags                []string `yaml:"tags" validate:"required,min=1,dive,required"`
	Replaced            string   `yaml:"replaced,omitempty"`
	Replacement         string   `yaml:"replacement,omitempty"`
	ExtraGood           string   `yaml:"extra_good,omitempty"`
	CycleInterval       int      `yaml:"cycle_interval,omitempty" validate:"min=0"`
	RequiresElectricity bool     `yaml:"requires_electricity,omitempty"`
}
