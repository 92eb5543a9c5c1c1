package writers

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Nydauron/elo2bracket/bracket"
	"github.com/Nydauron/elo2bracket/sim"
)

// WriteBracket renders a tournament result as text: each region round by
// round, then the Final Four and the championship game. Every game line
// shows the winner, the loser, and the win probability the winner carried
// into the game.
func WriteBracket(w io.Writer, res *sim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, region := range bracket.Regions {
		fmt.Fprintf(tw, "=== %s Region ===\n", region)
		for round := bracket.RoundOf64; round < bracket.FinalFour; round++ {
			fmt.Fprintf(tw, "%s\n", round)
			for _, g := range res.RegionGames(round, region) {
				writeGame(tw, g)
			}
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "=== %s ===\n", bracket.FinalFour)
	for _, g := range res.Rounds[bracket.FinalFour] {
		writeGame(tw, g)
	}
	fmt.Fprintf(tw, "\n=== %s ===\n", bracket.Championship)
	for _, g := range res.Rounds[bracket.Championship] {
		writeGame(tw, g)
	}
	fmt.Fprintf(tw, "\nChampion: (%d) %s [%s]\n", res.Champion.Seed, res.Champion.Name, res.Champion.Region)
	return tw.Flush()
}

func writeGame(w io.Writer, g sim.Game) {
	fmt.Fprintf(w, "  (%d) %s\tdef.\t(%d) %s\t%5.1f%%\n",
		g.Winner.Seed, g.Winner.Name, g.Loser.Seed, g.Loser.Name, g.Prob*100)
}
