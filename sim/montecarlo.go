package sim

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/Nydauron/elo2bracket/bracket"
)

// TeamProbabilities holds one team's chance of winning each round, i.e. of
// advancing past the round of 64, the round of 32, and so on through
// winning the championship. Team carries the pre-tournament rating.
type TeamProbabilities struct {
	Team   bracket.Team
	Rounds [bracket.NumRounds]float64
}

// ProbabilityTable lists per-team advancement probabilities, sorted by
// championship probability descending. Ties keep field order.
type ProbabilityTable []TeamProbabilities

type roundCounts [bracket.NumRounds]int

// Aggregator runs independent tournament trials and accumulates per-team,
// per-round win counts. Trial i always draws from a source seeded with
// BaseSeed+i, and counts are merged by plain summation, so the result is
// identical for any worker count and any trial scheduling.
type Aggregator struct {
	Runner   Runner
	Trials   int
	BaseSeed int64

	// Workers caps the number of concurrent trial workers. Zero or
	// negative means one per available CPU.
	Workers int

	// Progress, when set, is called after every completed trial with the
	// number of finished trials and the total. Calls are serialized on a
	// single goroutine but overlap with still-running trials.
	Progress func(completed, total int)
}

// Run executes all trials against fresh copies of field and converts the
// accumulated counts into probabilities. The trial count is checked before
// any work starts.
func (a Aggregator) Run(field []bracket.Team) (ProbabilityTable, error) {
	if a.Trials < 1 {
		return nil, fmt.Errorf("trial count must be at least 1, got %d", a.Trials)
	}
	workers := a.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > a.Trials {
		workers = a.Trials
	}

	index := make(map[string]int, len(field))
	for i, t := range field {
		index[t.Name] = i
	}

	jobs := make(chan int)
	tallies := make(chan []roundCounts, workers)
	completed := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]roundCounts, len(field))
			for trial := range jobs {
				rng := rand.New(rand.NewSource(a.BaseSeed + int64(trial)))
				res := a.Runner.Run(field, rng)
				for round, games := range res.Rounds {
					for _, g := range games {
						local[index[g.Winner.Name]][round]++
					}
				}
				completed <- struct{}{}
			}
			tallies <- local
		}()
	}

	var progressWG sync.WaitGroup
	progressWG.Add(1)
	go func() {
		defer progressWG.Done()
		done := 0
		for range completed {
			done++
			if a.Progress != nil {
				a.Progress(done, a.Trials)
			}
		}
	}()

	for trial := 0; trial < a.Trials; trial++ {
		jobs <- trial
	}
	close(jobs)
	wg.Wait()
	close(completed)
	close(tallies)
	progressWG.Wait()

	total := make([]roundCounts, len(field))
	for local := range tallies {
		for i := range local {
			for r := 0; r < bracket.NumRounds; r++ {
				total[i][r] += local[i][r]
			}
		}
	}

	table := make(ProbabilityTable, len(field))
	n := float64(a.Trials)
	for i, t := range field {
		row := TeamProbabilities{Team: t}
		for r := 0; r < bracket.NumRounds; r++ {
			row.Rounds[r] = float64(total[i][r]) / n
		}
		table[i] = row
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Rounds[bracket.Championship] > table[j].Rounds[bracket.Championship]
	})
	return table, nil
}
