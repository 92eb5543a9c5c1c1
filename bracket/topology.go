package bracket

import "fmt"

// Round indexes an elimination stage, zero-based from the round of 64.
type Round int

const (
	RoundOf64 Round = iota
	RoundOf32
	Sweet16
	Elite8
	FinalFour
	Championship

	// NumRounds is the number of elimination stages in a 64-team bracket.
	NumRounds = 6
)

// RegionRounds is the number of rounds played inside a single region.
const RegionRounds = 4

// TeamsPerRegion is the size of each regional sub-bracket.
const TeamsPerRegion = 16

// FieldSize is the total number of teams in the tournament.
const FieldSize = 64

var roundNames = [NumRounds]string{
	"Round of 64",
	"Round of 32",
	"Sweet 16",
	"Elite 8",
	"Final Four",
	"Championship",
}

func (r Round) String() string {
	if r < 0 || r >= NumRounds {
		return fmt.Sprintf("Round(%d)", int(r))
	}
	return roundNames[r]
}

// SeedMatchups is the standard first-round pairing order within a region.
// Adjacent winners meet in the next round, so this slot order also fixes
// every later intra-region pairing (1/16 winner plays 8/9 winner, and so
// on down the bracket).
var SeedMatchups = [8][2]int{
	{1, 16}, {8, 9}, {5, 12}, {4, 13},
	{6, 11}, {3, 14}, {7, 10}, {2, 15},
}

// Topology fixes the bracket structure above the regions: which region
// winners meet in each national semifinal. The intra-region structure is
// always SeedMatchups.
type Topology struct {
	// SemifinalPairs names the two national semifinals by region. Every
	// region must appear exactly once across both pairs.
	SemifinalPairs [2][2]Region
}

// DefaultTopology pairs East against West and South against Midwest in the
// national semifinals.
func DefaultTopology() Topology {
	return Topology{SemifinalPairs: [2][2]Region{{East, West}, {South, Midwest}}}
}

// Validate checks that the semifinal pairs cover each region exactly once.
func (t Topology) Validate() error {
	seen := map[Region]bool{}
	for _, pair := range t.SemifinalPairs {
		for _, r := range pair {
			if seen[r] {
				return fmt.Errorf("region %s appears twice in semifinal pairs", r)
			}
			seen[r] = true
		}
	}
	for _, r := range Regions {
		if !seen[r] {
			return fmt.Errorf("region %s missing from semifinal pairs", r)
		}
	}
	return nil
}

// FieldOrder arranges the full field into global slot order: regions laid
// out in semifinal-pair order, each region in SlotOrder. Repeated adjacent
// pairing over the result reproduces the entire tournament, national
// rounds included, because the two halves of the list meet exactly at the
// configured semifinals.
func (t Topology) FieldOrder(byRegion map[Region][]*Team) []*Team {
	field := make([]*Team, 0, FieldSize)
	for _, pair := range t.SemifinalPairs {
		for _, region := range pair {
			field = append(field, SlotOrder(byRegion[region])...)
		}
	}
	return field
}

// SlotOrder arranges the 16 teams of one region into bracket slot order so
// that adjacent pairing yields SeedMatchups. Panics on a malformed region;
// the field must be validated before simulation starts.
func SlotOrder(regionTeams []*Team) []*Team {
	if len(regionTeams) != TeamsPerRegion {
		panic(fmt.Sprintf("region has %d teams, want %d", len(regionTeams), TeamsPerRegion))
	}
	bySeed := make(map[int]*Team, TeamsPerRegion)
	for _, t := range regionTeams {
		bySeed[t.Seed] = t
	}
	ordered := make([]*Team, 0, TeamsPerRegion)
	for _, matchup := range SeedMatchups {
		for _, seed := range matchup {
			t, ok := bySeed[seed]
			if !ok {
				panic(fmt.Sprintf("region missing seed %d", seed))
			}
			ordered = append(ordered, t)
		}
	}
	return ordered
}

// Pairings maps a round's ordered team list to that round's games: slot 0
// plays slot 1, slot 2 plays slot 3, and so on. Winners keep their slot
// order, so feeding them back in produces the next round. Panics on an odd
// team count.
func Pairings(current []*Team) [][2]*Team {
	if len(current)%2 != 0 {
		panic(fmt.Sprintf("cannot pair %d teams", len(current)))
	}
	pairs := make([][2]*Team, 0, len(current)/2)
	for i := 0; i < len(current); i += 2 {
		pairs = append(pairs, [2]*Team{current[i], current[i+1]})
	}
	return pairs
}
