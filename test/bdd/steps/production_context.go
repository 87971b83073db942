package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// productionContext is shared by the chain, comparison and catalog
// persistence scenarios
type productionContext struct {
	catalog *production.Catalog

	root       *production.ChainNode
	base       *production.ChainNode
	optimized  *production.ChainNode
	comparison services.ScenarioComparison
	err        error

	loaded *production.Catalog
}

func (c *productionContext) reset() {
	c.catalog = production.NewCatalog()
	c.root = nil
	c.base = nil
	c.optimized = nil
	c.comparison = services.ScenarioComparison{}
	c.err = nil
	c.loaded = nil
}

func (c *productionContext) resolver() *services.ChainResolver {
	return services.NewChainResolver(c.catalog, services.NewModifierSelector())
}

// ============================================================================
// Catalog setup steps
// ============================================================================

func (c *productionContext) aProductionCatalogWithGoods(table *godog.Table) error {
	c.catalog = production.NewCatalog()
	for _, row := range table.Rows[1:] {
		name := getCellValueFromTable(table, row, "name")
		raw := getCellValueFromTable(table, row, "raw") == "true"
		if err := c.addGood(name, raw); err != nil {
			return err
		}
	}
	return nil
}

func (c *productionContext) theDemoCatalog() error {
	catalog, err := catalogfile.NewDemoSource().LoadCatalog(context.Background())
	if err != nil {
		return err
	}
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("demo catalog is invalid: %w", err)
	}
	c.catalog = catalog
	return nil
}

func (c *productionContext) aRawGood(name string) error {
	return c.addGood(name, true)
}

func (c *productionContext) aManufacturedGood(name string) error {
	return c.addGood(name, false)
}

func (c *productionContext) addGood(name string, raw bool) error {
	good, err := production.NewGood(name, raw)
	if err != nil {
		return err
	}
	return c.catalog.AddGood(good)
}

func (c *productionContext) aBuildingProducingFrom(name, outputs, inputs string, cycleSeconds int, tags, workforce string) error {
	outputAmounts, err := parseAmounts(outputs)
	if err != nil {
		return err
	}
	inputAmounts, err := parseAmounts(inputs)
	if err != nil {
		return err
	}
	recipe, err := production.NewRecipe(inputAmounts, outputAmounts)
	if err != nil {
		return err
	}

	workforceMap := make(map[string]int)
	for _, amount := range mustSplit(workforce) {
		parts := strings.SplitN(amount, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid workforce %q", amount)
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("invalid workforce count %q: %w", amount, err)
		}
		workforceMap[strings.TrimSpace(parts[0])] = count
	}

	building, err := production.NewProductionBuilding(
		name,
		recipe,
		decimal.NewFromInt(int64(cycleSeconds)),
		mustSplit(tags),
		true,
		workforceMap,
		[]production.Location{production.LocationOldWorld},
	)
	if err != nil {
		return err
	}
	return c.catalog.AddBuilding(building)
}

func (c *productionContext) aProductivityModifier(name, magnitude, tags string) error {
	value, err := decimal.NewFromString(magnitude)
	if err != nil {
		return err
	}
	modifier, err := production.NewProductivityModifier(name, value, mustSplit(tags))
	if err != nil {
		return err
	}
	return c.catalog.AddModifier(modifier)
}

func (c *productionContext) aWorkforceReductionModifier(name, magnitude, tags string) error {
	value, err := decimal.NewFromString(magnitude)
	if err != nil {
		return err
	}
	modifier, err := production.NewWorkforceReductionModifier(name, value, mustSplit(tags))
	if err != nil {
		return err
	}
	return c.catalog.AddModifier(modifier)
}

func (c *productionContext) anInputReplacementModifier(name, replaced, replacement, rank, tags string) error {
	value, err := decimal.NewFromString(rank)
	if err != nil {
		return err
	}
	modifier, err := production.NewInputReplacementModifier(name, replaced, replacement, value, mustSplit(tags))
	if err != nil {
		return err
	}
	return c.catalog.AddModifier(modifier)
}

// ============================================================================
// Registration
// ============================================================================

// InitializeProductionScenario registers chain resolution, scenario
// comparison and catalog persistence steps
func InitializeProductionScenario(sc *godog.ScenarioContext) {
	c := &productionContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Catalog setup
	sc.Step(`^a production catalog with goods:$`, c.aProductionCatalogWithGoods)
	sc.Step(`^the demo catalog$`, c.theDemoCatalog)
	sc.Step(`^a raw good "([^"]*)"$`, c.aRawGood)
	sc.Step(`^a manufactured good "([^"]*)"$`, c.aManufacturedGood)
	sc.Step(`^a building "([^"]*)" producing "([^"]*)" from "([^"]*)" every (\d+) seconds with tags "([^"]*)" and workforce "([^"]*)"$`,
		c.aBuildingProducingFrom)
	sc.Step(`^a productivity modifier "([^"]*)" of ([\d.]+) for tags "([^"]*)"$`, c.aProductivityModifier)
	sc.Step(`^a workforce reduction modifier "([^"]*)" of ([\d.]+) for tags "([^"]*)"$`, c.aWorkforceReductionModifier)
	sc.Step(`^an input replacement modifier "([^"]*)" replacing "([^"]*)" with "([^"]*)" ranked ([\d.]+) for tags "([^"]*)"$`,
		c.anInputReplacementModifier)

	registerChainSteps(sc, c)
	registerComparisonSteps(sc, c)
	registerCatalogRepositorySteps(sc, c)
}

// ============================================================================
// Helper Functions
// ============================================================================

// getCellValueFromTable gets a cell value from a table row by column name
// It uses the first row (table.Rows[0]) as the header to find the column index
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// parseAmounts parses "Grain:1, Sugar:0.5" into recipe lines
func parseAmounts(spec string) ([]production.GoodAmount, error) {
	var amounts []production.GoodAmount
	for _, part := range mustSplit(spec) {
		idx := strings.LastIndex(part, ":")
		if idx < 0 {
			return nil, fmt.Errorf("invalid amount %q, expected Good:amount", part)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(part[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", part, err)
		}
		amounts = append(amounts, production.GoodAmount{Good: strings.TrimSpace(part[:idx]), Amount: amount})
	}
	return amounts, nil
}

// mustSplit splits a comma separated list, dropping blanks
func mustSplit(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
