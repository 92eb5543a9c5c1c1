package sim

import "math"

// DefaultK is the ELO K-factor applied to tournament games.
const DefaultK = 20.0

// RatingModel derives matchup win probabilities and post-game rating
// adjustments from ELO-style ratings.
type RatingModel struct {
	k float64
}

// NewRatingModel returns a model with the given K-factor. Non-positive
// values fall back to DefaultK.
func NewRatingModel(k float64) RatingModel {
	if k <= 0 {
		k = DefaultK
	}
	return RatingModel{k: k}
}

// WinProbability returns P(a beats b) via the logistic ELO formula.
// WinProbability(a, b) + WinProbability(b, a) == 1 for any finite ratings,
// and equal ratings give exactly 0.5.
func (RatingModel) WinProbability(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// UpdateRatings returns the post-game ratings for the winner and loser of
// a game. The winner gains K*(1-expected) points and the loser gives up
// the same amount, so the adjustment is zero-sum.
func (m RatingModel) UpdateRatings(winner, loser float64) (newWinner, newLoser float64) {
	delta := m.k * (1 - m.WinProbability(winner, loser))
	return winner + delta, loser - delta
}
