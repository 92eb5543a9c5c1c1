package bracket

import (
	"fmt"
	"strings"
)

// Region identifies one of the four 16-team sub-brackets.
type Region string

const (
	East    Region = "East"
	West    Region = "West"
	South   Region = "South"
	Midwest Region = "Midwest"
)

// Regions lists all regions in canonical order.
var Regions = [4]Region{East, West, South, Midwest}

// ParseRegion normalizes a region name to its canonical form. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseRegion(s string) (Region, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(trimmed, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Team is one entry in the 64-team field. Rating is mutated by the
// simulator as games resolve; callers that need the original ratings back
// must keep their own copy of the field.
type Team struct {
	Name   string
	Rating float64
	Seed   int
	Region Region
}
