package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Nydauron/elo2bracket/bracket"
)

// Column names recognized in team tables, matched case-insensitively.
const (
	TeamColName   = "team"
	EloColName    = "elo"
	SeedColName   = "seed"
	RegionColName = "region"
)

var requiredColumns = []string{TeamColName, EloColName, SeedColName, RegionColName}

// columnIndex maps lowercased header names to their position. Extra
// columns are kept in the map but otherwise ignored.
func columnIndex(headers []string) (map[string]int, error) {
	idx := make(map[string]int, len(headers))
	for i, name := range headers {
		idx[normalizeHeader(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return idx, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseTeamRow builds a Team from a cell accessor keyed by column name.
func parseTeamRow(cell func(col string) string) (bracket.Team, error) {
	name := cell(TeamColName)
	if name == "" {
		return bracket.Team{}, fmt.Errorf("empty team name")
	}
	rating, err := strconv.ParseFloat(cell(EloColName), 64)
	if err != nil {
		return bracket.Team{}, fmt.Errorf("elo for %s: %w", name, err)
	}
	seed, err := strconv.Atoi(cell(SeedColName))
	if err != nil {
		return bracket.Team{}, fmt.Errorf("seed for %s: %w", name, err)
	}
	region, err := bracket.ParseRegion(cell(RegionColName))
	if err != nil {
		return bracket.Team{}, fmt.Errorf("region for %s: %w", name, err)
	}
	return bracket.Team{Name: name, Rating: rating, Seed: seed, Region: region}, nil
}

// ValidateField checks the structural invariants the simulator assumes: 64
// teams, 16 per region, seeds 1-16 unique within each region, unique
// non-empty names, and finite ratings. The simulator itself never
// re-validates, so every violation must be caught here.
func ValidateField(teams []bracket.Team) error {
	if len(teams) != bracket.FieldSize {
		return fmt.Errorf("expected %d teams, got %d", bracket.FieldSize, len(teams))
	}
	names := make(map[string]struct{}, len(teams))
	seeds := make(map[bracket.Region]map[int]string, len(bracket.Regions))
	for _, r := range bracket.Regions {
		seeds[r] = make(map[int]string, bracket.TeamsPerRegion)
	}
	for _, t := range teams {
		if t.Name == "" {
			return fmt.Errorf("team with empty name (seed %d, region %s)", t.Seed, t.Region)
		}
		if _, ok := names[t.Name]; ok {
			return fmt.Errorf("duplicate team name %q", t.Name)
		}
		names[t.Name] = struct{}{}
		if math.IsNaN(t.Rating) || math.IsInf(t.Rating, 0) {
			return fmt.Errorf("team %s has non-finite rating", t.Name)
		}
		if t.Seed < 1 || t.Seed > bracket.TeamsPerRegion {
			return fmt.Errorf("team %s has seed %d outside 1-%d", t.Name, t.Seed, bracket.TeamsPerRegion)
		}
		regionSeeds, ok := seeds[t.Region]
		if !ok {
			return fmt.Errorf("team %s has unknown region %q", t.Name, t.Region)
		}
		if other, taken := regionSeeds[t.Seed]; taken {
			return fmt.Errorf("seed %d in region %s assigned to both %s and %s", t.Seed, t.Region, other, t.Name)
		}
		regionSeeds[t.Seed] = t.Name
	}
	for _, r := range bracket.Regions {
		if len(seeds[r]) != bracket.TeamsPerRegion {
			return fmt.Errorf("region %s has %d teams, expected %d", r, len(seeds[r]), bracket.TeamsPerRegion)
		}
	}
	return nil
}
