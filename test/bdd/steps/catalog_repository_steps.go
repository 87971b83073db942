package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/adapters/persistence"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func (c *productionContext) repository() *persistence.GormCatalogRepository {
	return persistence.NewGormCatalogRepository(helpers.SharedTestDB)
}

func (c *productionContext) theCatalogDatabaseIsEmpty() error {
	return helpers.TruncateAllTables()
}

func (c *productionContext) iSaveTheCatalogToTheDatabase() error {
	return c.repository().SaveCatalog(context.Background(), c.catalog)
}

func (c *productionContext) iLoadTheCatalogFromTheDatabase() error {
	loaded, err := c.repository().LoadCatalog(context.Background())
	if err != nil {
		return err
	}
	c.loaded = loaded
	return nil
}

func (c *productionContext) theLoadedCatalogShouldHave(goods, buildings, modifiers int) error {
	if c.loaded == nil {
		return fmt.Errorf("no catalog was loaded")
	}
	if got := len(c.loaded.Goods()); got != goods {
		return fmt.Errorf("expected %d goods, got %d", goods, got)
	}
	if got := len(c.loaded.Buildings()); got != buildings {
		return fmt.Errorf("expected %d buildings, got %d", buildings, got)
	}
	if got := len(c.loaded.Modifiers()); got != modifiers {
		return fmt.Errorf("expected %d modifiers, got %d", modifiers, got)
	}
	return nil
}

func (c *productionContext) theLoadedCatalogShouldBeValid() error {
	return c.loaded.Validate()
}

func (c *productionContext) theLoadedCatalogShouldListBuildings(expected string) error {
	names := make([]string, 0, len(c.loaded.Buildings()))
	for _, building := range c.loaded.Buildings() {
		names = append(names, building.Name)
	}
	if strings.Join(names, ", ") != strings.Join(mustSplit(expected), ", ") {
		return fmt.Errorf("expected buildings %q, got %v", expected, names)
	}
	return nil
}

func (c *productionContext) resolvingOptimizedWithTheLoadedCatalogShouldUseBuildings(good, rate string, count int) error {
	value, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}
	root, err := services.NewChainResolver(c.loaded, nil).Resolve(context.Background(), good, value, true)
	if err != nil {
		return err
	}
	if root.BuildingCount != count {
		return fmt.Errorf("expected %d buildings for %s, got %d", count, good, root.BuildingCount)
	}
	return nil
}

func registerCatalogRepositorySteps(sc *godog.ScenarioContext, c *productionContext) {
	sc.Step(`^the catalog database is empty$`, c.theCatalogDatabaseIsEmpty)
	sc.Step(`^I save the catalog to the database$`, c.iSaveTheCatalogToTheDatabase)
	sc.Step(`^I load the catalog from the database$`, c.iLoadTheCatalogFromTheDatabase)
	sc.Step(`^the loaded catalog should have (\d+) goods, (\d+) buildings and (\d+) modifiers$`, c.theLoadedCatalogShouldHave)
	sc.Step(`^the loaded catalog should be valid$`, c.theLoadedCatalogShouldBeValid)
	sc.Step(`^the loaded catalog should list buildings "([^"]*)"$`, c.theLoadedCatalogShouldListBuildings)
	sc.Step(`^resolving optimized "([^"]*)" at ([\d.]+) t/min with the loaded catalog should use (\d+) buildings$`,
		c.resolvingOptimizedWithTheLoadedCatalogShouldUseBuildings)
}
