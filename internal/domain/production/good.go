package production

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/annocalc-go/internal/domain/shared"
)

// Good represents a commodity in the production system.
//
// Raw goods (grain, cocoa, clay) are sourced, never produced by a building.
// Manufactured goods must resolve to exactly one producing building in the catalog.
type Good struct {
	Name  string
	IsRaw bool
}

// NewGood creates a new good, rejecting blank names
func NewGood(name string, isRaw bool) (*Good, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("good.name", "must not be empty")
	}
	return &Good{Name: name, IsRaw: isRaw}, nil
}

func (g *Good) String() string {
	return fmt.Sprintf("Good(%s, raw=%t)", g.Name, g.IsRaw)
}
