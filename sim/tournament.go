package sim

import (
	"fmt"
	"math/rand"

	"github.com/Nydauron/elo2bracket/bracket"
)

// Result is the complete record of one simulated tournament: every game of
// every round in bracket slot order, the four region winners, and the
// champion. A Result is owned by the Run call that produced it and is
// never mutated afterwards.
type Result struct {
	Rounds        [bracket.NumRounds][]Game
	RegionWinners map[bracket.Region]bracket.Team
	Champion      bracket.Team
	RunnerUp      bracket.Team
}

// RegionGames returns the games of one intra-region round (rounds 0-3) for
// the given region, in slot order.
func (r *Result) RegionGames(round bracket.Round, region bracket.Region) []Game {
	if round < bracket.RoundOf64 || round >= bracket.FinalFour {
		return nil
	}
	var games []Game
	for _, g := range r.Rounds[round] {
		if g.Winner.Region == region {
			games = append(games, g)
		}
	}
	return games
}

// Runner drives complete tournaments over a fixed topology and rating
// model.
type Runner struct {
	topology bracket.Topology
	model    RatingModel
}

func NewRunner(topology bracket.Topology, model RatingModel) Runner {
	return Runner{topology: topology, model: model}
}

// Run simulates one full tournament. The input field is copied first, so
// the caller's ratings are never touched and successive runs from the same
// field are independent. Each round's winners carry their updated ratings
// into the next round.
//
// The field must already be validated (64 teams, 16 per region, unique
// seeds 1-16); structural violations panic.
func (r Runner) Run(field []bracket.Team, rng *rand.Rand) *Result {
	teams := make([]bracket.Team, len(field))
	copy(teams, field)

	byRegion := make(map[bracket.Region][]*bracket.Team, len(bracket.Regions))
	for i := range teams {
		t := &teams[i]
		byRegion[t.Region] = append(byRegion[t.Region], t)
	}

	current := r.topology.FieldOrder(byRegion)
	games := NewGameSimulator(r.model, rng)

	res := &Result{RegionWinners: make(map[bracket.Region]bracket.Team, len(bracket.Regions))}
	for round := bracket.RoundOf64; len(current) > 1; round++ {
		pairs := bracket.Pairings(current)
		next := make([]*bracket.Team, 0, len(pairs))
		for _, pair := range pairs {
			winner, loser, p := games.Simulate(pair[0], pair[1])
			winner.Rating, loser.Rating = r.model.UpdateRatings(winner.Rating, loser.Rating)
			res.Rounds[round] = append(res.Rounds[round], Game{Winner: *winner, Loser: *loser, Prob: p})
			next = append(next, winner)
		}
		if round == bracket.Elite8 {
			for _, t := range next {
				res.RegionWinners[t.Region] = *t
			}
		}
		current = next
	}

	final := res.Rounds[bracket.Championship]
	if len(final) != 1 {
		panic(fmt.Sprintf("championship round has %d games", len(final)))
	}
	res.Champion = final[0].Winner
	res.RunnerUp = final[0].Loser
	return res
}
