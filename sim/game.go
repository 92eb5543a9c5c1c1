package sim

import (
	"math/rand"

	"github.com/Nydauron/elo2bracket/bracket"
)

// Game records one resolved pairing: the winner, the loser, and the win
// probability the winner carried into the game. Team values are snapshots
// taken after the post-game rating update.
type Game struct {
	Winner bracket.Team
	Loser  bracket.Team
	Prob   float64
}

// GameSimulator decides single games from a rating model and a random
// source. A deterministically seeded *rand.Rand yields deterministic
// outcomes.
type GameSimulator struct {
	model RatingModel
	rng   *rand.Rand
}

func NewGameSimulator(model RatingModel, rng *rand.Rand) *GameSimulator {
	return &GameSimulator{model: model, rng: rng}
}

// Simulate plays a single game between a and b. It consumes exactly one
// draw from the random source and returns the winner, the loser, and the
// probability the winner had of winning. Ratings are left untouched; the
// caller decides when to apply the update.
func (g *GameSimulator) Simulate(a, b *bracket.Team) (winner, loser *bracket.Team, p float64) {
	pA := g.model.WinProbability(a.Rating, b.Rating)
	if g.rng.Float64() < pA {
		return a, b, pA
	}
	return b, a, 1 - pA
}
