package sim

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/Nydauron/elo2bracket/bracket"
)

func rowByName(t *testing.T, table ProbabilityTable, name string) TeamProbabilities {
	t.Helper()
	for _, row := range table {
		if row.Team.Name == name {
			return row
		}
	}
	t.Fatalf("team %s not in table", name)
	return TeamProbabilities{}
}

func TestAggregatorRejectsBadTrialCount(t *testing.T) {
	for _, trials := range []int{0, -1, -100} {
		agg := Aggregator{Runner: testRunner(), Trials: trials}
		if _, err := agg.Run(testField()); err == nil {
			t.Errorf("expected error for %d trials", trials)
		}
	}
}

func TestAggregatorProbabilitiesNonIncreasing(t *testing.T) {
	agg := Aggregator{Runner: testRunner(), Trials: 250, BaseSeed: 17}
	table, err := agg.Run(testField())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(table) != bracket.FieldSize {
		t.Fatalf("table has %d rows, want %d", len(table), bracket.FieldSize)
	}
	for _, row := range table {
		for r := 0; r < bracket.NumRounds; r++ {
			if row.Rounds[r] < 0 || row.Rounds[r] > 1 {
				t.Errorf("%s round %d probability %g out of range", row.Team.Name, r, row.Rounds[r])
			}
			if r > 0 && row.Rounds[r] > row.Rounds[r-1]+tolerance {
				t.Errorf("%s: round %d probability %g exceeds round %d probability %g",
					row.Team.Name, r, row.Rounds[r], r-1, row.Rounds[r-1])
			}
		}
	}
}

// Each trial produces exactly one champion and 32 first-round winners, so
// the probability columns must sum to the per-trial winner counts.
func TestAggregatorColumnSums(t *testing.T) {
	agg := Aggregator{Runner: testRunner(), Trials: 100, BaseSeed: 4}
	table, err := agg.Run(testField())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	wantSums := []float64{32, 16, 8, 4, 2, 1}
	for r := 0; r < bracket.NumRounds; r++ {
		sum := 0.0
		for _, row := range table {
			sum += row.Rounds[r]
		}
		if math.Abs(sum-wantSums[r]) > 1e-6 {
			t.Errorf("round %d probabilities sum to %g, want %g", r, sum, wantSums[r])
		}
	}
}

func TestAggregatorDeterministicAcrossWorkerCounts(t *testing.T) {
	field := testField()
	var tables []ProbabilityTable
	for _, workers := range []int{1, 3, 8} {
		agg := Aggregator{Runner: testRunner(), Trials: 60, BaseSeed: 23, Workers: workers}
		table, err := agg.Run(field)
		if err != nil {
			t.Fatalf("Run with %d workers returned error: %v", workers, err)
		}
		tables = append(tables, table)
	}
	if !reflect.DeepEqual(tables[0], tables[1]) || !reflect.DeepEqual(tables[1], tables[2]) {
		t.Error("worker count changed the aggregate result")
	}
}

func TestAggregatorSortedByChampionshipProbability(t *testing.T) {
	agg := Aggregator{Runner: testRunner(), Trials: 120, BaseSeed: 9}
	table, err := agg.Run(testField())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for i := 1; i < len(table); i++ {
		if table[i].Rounds[bracket.Championship] > table[i-1].Rounds[bracket.Championship] {
			t.Fatalf("table not sorted at row %d", i)
		}
	}
}

// Splitting N trials into two batches and merging counts must equal one
// N-trial run, given the same per-trial seeds.
func TestAggregatorBatchSplitEquivalence(t *testing.T) {
	field := testField()
	const n1, n2 = 40, 60
	const baseSeed = 31

	full, err := Aggregator{Runner: testRunner(), Trials: n1 + n2, BaseSeed: baseSeed}.Run(field)
	if err != nil {
		t.Fatalf("full run returned error: %v", err)
	}
	first, err := Aggregator{Runner: testRunner(), Trials: n1, BaseSeed: baseSeed}.Run(field)
	if err != nil {
		t.Fatalf("first batch returned error: %v", err)
	}
	second, err := Aggregator{Runner: testRunner(), Trials: n2, BaseSeed: baseSeed + n1}.Run(field)
	if err != nil {
		t.Fatalf("second batch returned error: %v", err)
	}

	for _, team := range field {
		want := rowByName(t, full, team.Name)
		a := rowByName(t, first, team.Name)
		b := rowByName(t, second, team.Name)
		for r := 0; r < bracket.NumRounds; r++ {
			merged := (a.Rounds[r]*n1 + b.Rounds[r]*n2) / (n1 + n2)
			if math.Abs(merged-want.Rounds[r]) > tolerance {
				t.Errorf("%s round %d: merged %g, full %g", team.Name, r, merged, want.Rounds[r])
			}
		}
	}
}

func TestAggregatorProgressReachesTotal(t *testing.T) {
	var mu sync.Mutex
	var calls []int
	agg := Aggregator{
		Runner:   testRunner(),
		Trials:   25,
		BaseSeed: 2,
		Progress: func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != 25 {
				t.Errorf("progress total %d, want 25", total)
			}
			calls = append(calls, completed)
		},
	}
	if _, err := agg.Run(testField()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 25 {
		t.Fatalf("progress called %d times, want 25", len(calls))
	}
	for i, completed := range calls {
		if completed != i+1 {
			t.Fatalf("progress call %d reported %d completed", i, completed)
		}
	}
}

func TestAggregatorLeavesInputUntouched(t *testing.T) {
	field := testField()
	before := make([]bracket.Team, len(field))
	copy(before, field)

	if _, err := (Aggregator{Runner: testRunner(), Trials: 30, BaseSeed: 6}).Run(field); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !reflect.DeepEqual(field, before) {
		t.Error("input field was mutated by the aggregator")
	}
}
