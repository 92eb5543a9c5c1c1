package sim

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestWinProbabilityEqualRatings(t *testing.T) {
	model := NewRatingModel(DefaultK)
	for _, rating := range []float64{0, 1500, 1700, -200, 2456.5} {
		if p := model.WinProbability(rating, rating); p != 0.5 {
			t.Errorf("WinProbability(%g, %g) = %g, want 0.5", rating, rating, p)
		}
	}
}

func TestWinProbabilitySymmetry(t *testing.T) {
	model := NewRatingModel(DefaultK)
	pairs := [][2]float64{
		{1700, 1600}, {2000, 1600}, {1500, 1500}, {1234.5, 1876.25}, {-100, 300},
	}
	for _, pair := range pairs {
		sum := model.WinProbability(pair[0], pair[1]) + model.WinProbability(pair[1], pair[0])
		if math.Abs(sum-1) > tolerance {
			t.Errorf("probabilities for %v sum to %g, want 1", pair, sum)
		}
	}
}

func TestWinProbabilityFavorsHigherRating(t *testing.T) {
	model := NewRatingModel(DefaultK)
	if p := model.WinProbability(1700, 1500); p <= 0.5 {
		t.Errorf("higher rating should be favored, got %g", p)
	}

	// 400 point gap is roughly a 10-to-1 favorite.
	p := model.WinProbability(2000, 1600)
	if p < 0.90 || p > 0.92 {
		t.Errorf("WinProbability(2000, 1600) = %g, want ~0.909", p)
	}

	if p := model.WinProbability(2100, 1500); p <= 0 || p >= 1 {
		t.Errorf("probability out of bounds: %g", p)
	}
}

func TestUpdateRatingsZeroSum(t *testing.T) {
	model := NewRatingModel(DefaultK)
	tests := [][2]float64{
		{1700, 1600}, {1600, 1600}, {1500, 1900}, {2000, 1200},
	}
	for _, tt := range tests {
		winner, loser := tt[0], tt[1]
		newWinner, newLoser := model.UpdateRatings(winner, loser)
		if newWinner <= winner {
			t.Errorf("winner %g did not gain points: %g", winner, newWinner)
		}
		if newLoser >= loser {
			t.Errorf("loser %g did not drop points: %g", loser, newLoser)
		}
		if diff := (newWinner - winner) + (newLoser - loser); math.Abs(diff) > tolerance {
			t.Errorf("update for %v not zero-sum: net %g", tt, diff)
		}
	}
}

func TestUpdateRatingsUpsetGainsMore(t *testing.T) {
	model := NewRatingModel(DefaultK)
	favNew, _ := model.UpdateRatings(1800, 1500)
	dogNew, _ := model.UpdateRatings(1500, 1800)
	favGain := favNew - 1800
	dogGain := dogNew - 1500
	if dogGain <= favGain {
		t.Errorf("underdog gain %g should exceed favorite gain %g", dogGain, favGain)
	}
}

func TestNewRatingModelDefaultsK(t *testing.T) {
	model := NewRatingModel(0)
	newWinner, _ := model.UpdateRatings(1600, 1600)
	if want := 1600 + DefaultK*0.5; math.Abs(newWinner-want) > tolerance {
		t.Errorf("zero K should fall back to DefaultK: got %g, want %g", newWinner, want)
	}
}
