package production

import (
	"fmt"
	"strings"
)

// Location is a region of the game world where a building can be placed
type Location string

const (
	LocationOldWorld Location = "Old World"
	LocationNewWorld Location = "New World"
	LocationEnbesa   Location = "Enbesa"
	LocationArctic   Location = "Arctic"
)

// AllLocations lists every known location in display order
var AllLocations = []Location{LocationOldWorld, LocationNewWorld, LocationEnbesa, LocationArctic}

// ParseLocation accepts display names ("Old World") as well as identifier forms
// ("OldWorld", "old_world", "OLD-WORLD").
func ParseLocation(value string) (Location, error) {
	key := normalizeLocation(value)
	for _, loc := range AllLocations {
		if normalizeLocation(string(loc)) == key {
			return loc, nil
		}
	}
	return "", fmt.Errorf("unknown location %q", value)
}

func normalizeLocation(value string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(value)))
}

func (l Location) String() string {
	return string(l)
}
