package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
)

func (c *productionContext) iCompareScenariosForAt(good, rate string) error {
	value, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}

	resolver := c.resolver()
	c.base, err = resolver.Resolve(context.Background(), good, value, false)
	if err != nil {
		return fmt.Errorf("base resolution failed: %w", err)
	}
	c.optimized, err = resolver.Resolve(context.Background(), good, value, true)
	if err != nil {
		return fmt.Errorf("optimized resolution failed: %w", err)
	}

	c.comparison = services.NewChainAnalyzer().Compare(c.base, c.optimized)
	return nil
}

func (c *productionContext) theBaseChainShouldUseBuildings(count int, building string) error {
	return expectBuildings(c.base, count, building)
}

func (c *productionContext) theOptimizedChainShouldUseBuildings(count int, building string) error {
	return expectBuildings(c.optimized, count, building)
}

func (c *productionContext) buildingsShouldBeSaved(count int) error {
	if c.comparison.BuildingsSaved != count {
		return fmt.Errorf("expected %d buildings saved, got %d", count, c.comparison.BuildingsSaved)
	}
	return nil
}

func (c *productionContext) theEfficiencyImprovementShouldBePercent(percent string) error {
	return expectDecimal("efficiency improvement", c.comparison.EfficiencyImprovement, percent)
}

func (c *productionContext) theWorkforceBreakdownShouldBe(table *godog.Table) error {
	rows := table.Rows[1:]
	if len(rows) != len(c.comparison.WorkforceByType) {
		return fmt.Errorf("expected %d workforce types, got %d", len(rows), len(c.comparison.WorkforceByType))
	}

	for i, row := range rows {
		delta := c.comparison.WorkforceByType[i]
		if delta.Type != getCellValueFromTable(table, row, "type") {
			return fmt.Errorf("row %d: expected type %s, got %s", i+1, getCellValueFromTable(table, row, "type"), delta.Type)
		}
		for column, got := range map[string]int{"base": delta.Base, "optimized": delta.Optimized, "saved": delta.Saved} {
			want, err := strconv.Atoi(getCellValueFromTable(table, row, column))
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("%s %s: expected %d, got %d", delta.Type, column, want, got)
			}
		}
	}
	return nil
}

func registerComparisonSteps(sc *godog.ScenarioContext, c *productionContext) {
	sc.Step(`^I compare scenarios for "([^"]*)" at ([\d.]+) t/min$`, c.iCompareScenariosForAt)
	sc.Step(`^the base chain should use (\d+) "([^"]*)" buildings$`, c.theBaseChainShouldUseBuildings)
	sc.Step(`^the optimized chain should use (\d+) "([^"]*)" buildings$`, c.theOptimizedChainShouldUseBuildings)
	sc.Step(`^(\d+) buildings should be saved$`, c.buildingsShouldBeSaved)
	sc.Step(`^the efficiency improvement should be ([\d.]+) percent$`, c.theEfficiencyImprovementShouldBePercent)
	sc.Step(`^the workforce breakdown should be:$`, c.theWorkforceBreakdownShouldBe)
}
