package steps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// ============================================================================
// Action Steps
// ============================================================================

func (c *productionContext) iResolveAt(good, rate string) error {
	return c.resolve(good, rate, false, true)
}

func (c *productionContext) iResolveOptimizedAt(good, rate string) error {
	return c.resolve(good, rate, true, true)
}

func (c *productionContext) iTryToResolveAt(good, rate string) error {
	return c.resolve(good, rate, false, false)
}

func (c *productionContext) resolve(good, rate string, optimized, mustSucceed bool) error {
	value, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}

	c.root, c.err = c.resolver().Resolve(context.Background(), good, value, optimized)
	if mustSucceed && c.err != nil {
		return fmt.Errorf("resolution failed: %w", c.err)
	}
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (c *productionContext) theRootShouldBeARawLeafRequiring(rate string) error {
	if c.root == nil {
		return fmt.Errorf("no chain was resolved")
	}
	if !c.root.IsRaw || !c.root.IsLeaf() {
		return fmt.Errorf("expected %s to be a raw leaf", c.root.Good)
	}
	return expectDecimal("requested rate", c.root.RequestedRate, rate)
}

func (c *productionContext) theChainShouldUseBuildings(count int) error {
	if c.root == nil {
		return fmt.Errorf("no chain was resolved")
	}
	if total := c.root.TotalBuildings(); total != count {
		return fmt.Errorf("expected %d buildings in the chain, got %d", count, total)
	}
	return nil
}

func (c *productionContext) theRootShouldUseBuildings(count int, building string) error {
	return expectBuildings(c.root, count, building)
}

func (c *productionContext) theRootShouldRequireAt(good, rate string) error {
	if c.root == nil {
		return fmt.Errorf("no chain was resolved")
	}
	for _, input := range c.root.Inputs {
		if input.Good == good {
			return expectDecimal(good+" input rate", input.Rate, rate)
		}
	}
	return fmt.Errorf("root does not require %s (inputs: %v)", good, c.root.Inputs)
}

func (c *productionContext) theRootWorkforceShouldBe(expected string) error {
	if c.root == nil {
		return fmt.Errorf("no chain was resolved")
	}
	for _, entry := range mustSplit(expected) {
		parts := strings.SplitN(entry, ":", 2)
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		if got := c.root.Workforce[strings.TrimSpace(parts[0])]; got != count {
			return fmt.Errorf("expected %s workforce %d, got %d", parts[0], count, got)
		}
	}
	return nil
}

func (c *productionContext) theChainShouldHaveDepth(depth int) error {
	if got := c.root.TotalDepth(); got != depth {
		return fmt.Errorf("expected depth %d, got %d", depth, got)
	}
	return nil
}

func (c *productionContext) theRootMultiplierShouldBe(expected string) error {
	if c.root == nil {
		return fmt.Errorf("no chain was resolved")
	}
	return expectDecimal("multiplier", c.root.Multiplier, expected)
}

func (c *productionContext) theAppliedModifiersShouldBe(expected string) error {
	got := strings.Join(c.root.ModifierNames(), ", ")
	if got != strings.Join(mustSplit(expected), ", ") {
		return fmt.Errorf("expected modifiers %q, got %q", expected, got)
	}
	return nil
}

func (c *productionContext) theChainShouldNeedRawMaterials(expected string) error {
	want := mustSplit(expected)
	sort.Strings(want)
	got := c.root.RequiredRawMaterials()
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected raw materials %v, got %v", want, got)
	}
	return nil
}

func (c *productionContext) resolutionShouldFailWithAError(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected a %s error, resolution succeeded", kind)
	}
	if c.root != nil {
		return fmt.Errorf("expected no partial chain on error")
	}

	var matched bool
	switch kind {
	case "unknown good":
		var target *production.UnknownGoodError
		matched = errors.As(c.err, &target)
	case "invalid rate":
		var target *production.InvalidRateError
		matched = errors.As(c.err, &target)
	case "no producer":
		var target *production.NoProducerError
		matched = errors.As(c.err, &target)
	case "ambiguous producer":
		var target *production.AmbiguousProducerError
		matched = errors.As(c.err, &target)
	case "cyclic recipe":
		var target *production.CyclicRecipeError
		matched = errors.As(c.err, &target)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}

	if !matched {
		return fmt.Errorf("expected a %s error, got: %v", kind, c.err)
	}
	return nil
}

func (c *productionContext) theErrorMessageShouldContain(text string) error {
	if c.err == nil || !strings.Contains(c.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, c.err)
	}
	return nil
}

func registerChainSteps(sc *godog.ScenarioContext, c *productionContext) {
	sc.Step(`^I resolve "([^"]*)" at (-?[\d.]+) t/min$`, c.iResolveAt)
	sc.Step(`^I resolve optimized "([^"]*)" at (-?[\d.]+) t/min$`, c.iResolveOptimizedAt)
	sc.Step(`^I try to resolve "([^"]*)" at (-?[\d.]+) t/min$`, c.iTryToResolveAt)

	sc.Step(`^the root should be a raw leaf requiring ([\d.]+) t/min$`, c.theRootShouldBeARawLeafRequiring)
	sc.Step(`^the chain should use (\d+) buildings$`, c.theChainShouldUseBuildings)
	sc.Step(`^the root should use (\d+) "([^"]*)" buildings$`, c.theRootShouldUseBuildings)
	sc.Step(`^the root should require "([^"]*)" at ([\d.]+) t/min$`, c.theRootShouldRequireAt)
	sc.Step(`^the root workforce should be "([^"]*)"$`, c.theRootWorkforceShouldBe)
	sc.Step(`^the chain should have depth (\d+)$`, c.theChainShouldHaveDepth)
	sc.Step(`^the root multiplier should be ([\d.]+)$`, c.theRootMultiplierShouldBe)
	sc.Step(`^the applied modifiers should be "([^"]*)"$`, c.theAppliedModifiersShouldBe)
	sc.Step(`^the chain should need raw materials "([^"]*)"$`, c.theChainShouldNeedRawMaterials)
	sc.Step(`^resolution should fail with a "([^"]*)" error$`, c.resolutionShouldFailWithAError)
	sc.Step(`^the error message should contain "([^"]*)"$`, c.theErrorMessageShouldContain)
}

func expectBuildings(node *production.ChainNode, count int, building string) error {
	if node == nil {
		return fmt.Errorf("no chain was resolved")
	}
	if node.Building == nil || node.Building.Name != building {
		return fmt.Errorf("expected building %s for %s", building, node.Good)
	}
	if node.BuildingCount != count {
		return fmt.Errorf("expected %d %s buildings, got %d", count, building, node.BuildingCount)
	}
	return nil
}

func expectDecimal(what string, got decimal.Decimal, want string) error {
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return fmt.Errorf("expected %s %s, got %s", what, expected, got)
	}
	return nil
}
