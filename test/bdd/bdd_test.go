package bdd

import (
	"os"
	"testing"

	"github.com/andrescamacho/annocalc-go/test/bdd/steps"
	"github.com/andrescamacho/annocalc-go/test/helpers"
	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Chain resolution, scenario comparison and catalog persistence share one context
	steps.InitializeProductionScenario(sc)
}

func TestMain(m *testing.M) {
	// Shared in-memory database for the catalog repository scenarios
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	helpers.CloseSharedTestDB()
	os.Exit(code)
}
