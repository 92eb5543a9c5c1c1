package writers

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Nydauron/elo2bracket/bracket"
	"github.com/Nydauron/elo2bracket/sim"
)

// probColumns names the per-round probability columns: the chance of
// reaching the round of 32, sweet 16, elite 8, final four, the
// championship game, and of winning it all.
var probColumns = [bracket.NumRounds]string{
	"prb_r32", "prb_s16", "prb_e8", "prb_f4", "prb_finals", "prb_champ",
}

// WriteProbabilities writes the advancement probability table as CSV, one
// row per team in table order, probabilities rounded to four decimals.
func WriteProbabilities(w io.Writer, table sim.ProbabilityTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"team", "seed", "region"}, probColumns[:]...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range table {
		record := []string{row.Team.Name, strconv.Itoa(row.Team.Seed), string(row.Team.Region)}
		for _, p := range row.Rounds {
			record = append(record, strconv.FormatFloat(p, 'f', 4, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
