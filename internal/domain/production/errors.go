package production

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain errors for catalog registration and chain resolution.
// None of them are retryable: the computation is pure, so the same inputs fail
// the same way until the catalog data or the request is corrected.

// DuplicateKeyError indicates a catalog entry with the same name already exists
type DuplicateKeyError struct {
	Kind string // "good", "building" or "modifier"
	Name string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s: %s is already registered", e.Kind, e.Name)
}

// NoProducerError indicates no building produces a manufactured good
type NoProducerError struct {
	Good string
}

func (e *NoProducerError) Error() string {
	return fmt.Sprintf("no building produces %s", e.Good)
}

// AmbiguousProducerError indicates more than one building produces a good
type AmbiguousProducerError struct {
	Good      string
	Buildings []string
}

func (e *AmbiguousProducerError) Error() string {
	return fmt.Sprintf("ambiguous producer for %s: %s", e.Good, strings.Join(e.Buildings, ", "))
}

// InvalidRecipeError indicates a malformed recipe or a zero output rate used as a denominator
type InvalidRecipeError struct {
	Building string
	Good     string
	Reason   string
}

func (e *InvalidRecipeError) Error() string {
	var b strings.Builder
	b.WriteString("invalid recipe")
	if e.Building != "" {
		fmt.Fprintf(&b, " for building %s", e.Building)
	}
	if e.Good != "" {
		fmt.Fprintf(&b, " (good %s)", e.Good)
	}
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	return b.String()
}

// CyclicRecipeError indicates a good transitively requires itself
type CyclicRecipeError struct {
	Good  string
	Chain []string
}

func (e *CyclicRecipeError) Error() string {
	return fmt.Sprintf("cyclic recipe detected for %s: %s", e.Good, strings.Join(e.Chain, " -> "))
}

// UnknownGoodError indicates a good is not registered in the catalog
type UnknownGoodError struct {
	Good string
}

func (e *UnknownGoodError) Error() string {
	return "unknown good: " + e.Good
}

// InvalidRateError indicates a requested rate that is not strictly positive,
// or one so large that the building or workforce counts no longer fit in an int
type InvalidRateError struct {
	Good   string
	Rate   decimal.Decimal
	Reason string // empty means "must be positive"
}

func (e *InvalidRateError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("invalid rate for %s: %s t/min (%s)", e.Good, e.Rate, reason)
}
