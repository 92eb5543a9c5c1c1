package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Nydauron/elo2bracket/bracket"
	"github.com/Nydauron/elo2bracket/config"
	"github.com/Nydauron/elo2bracket/parsers"
	"github.com/Nydauron/elo2bracket/sim"
	"github.com/Nydauron/elo2bracket/ui"
	"github.com/Nydauron/elo2bracket/writers"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
)

const (
	inputFlag      = "input"
	htmlFlag       = "html"
	outBracketFlag = "out-bracket"
	outProbsFlag   = "out-probs"
	trialsFlag     = "trials"
	seedFlag       = "seed"
	configFlag     = "config"
	topFlag        = "top"
	workersFlag    = "workers"
	stdoutCLIName  = "-"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

type runOptions struct {
	input      string
	isHTML     bool
	outBracket string
	outProbs   string
	trials     int
	seed       int64
	configPath string
	topN       int
	workers    int
}

func openInput(location string) (io.ReadCloser, error) {
	if u, err := url.ParseRequestURI(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		fmt.Fprintln(os.Stderr, "URL detected")
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("error occurred when trying to fetch page: %w", err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("invalid HTTP status code received: %v", resp.Status)
		}
		return resp.Body, nil
	}
	if f, err := os.Open(location); err == nil {
		fmt.Fprintln(os.Stderr, "File detected")
		return f, nil
	}
	return nil, fmt.Errorf("provided input was neither a valid URL or a path to existing file: %v", location)
}

func randomSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func outputWriter(location string) io.WriteCloser {
	if location == stdoutCLIName {
		return os.Stdout
	}
	return writers.NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

func cliHandle(opts runOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %v\n", err)
			os.Exit(2)
			return nil
		}
	}
	topology, err := cfg.Topology()
	if err != nil {
		return err
	}

	input, err := openInput(opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
		return nil
	}
	defer input.Close()

	var teams []bracket.Team
	if opts.isHTML {
		teams, err = parsers.ParseHTML(input)
	} else {
		teams, err = parsers.ParseCSV(input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not parse team table: %v\n", err)
		os.Exit(4)
		return nil
	}
	if err := parsers.ValidateField(teams); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid team field: %v\n", err)
		os.Exit(4)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Loaded %d teams across %d regions\n", len(teams), len(bracket.Regions))
	fmt.Fprintf(os.Stderr, "Using seed %d\n", opts.seed)

	model := sim.NewRatingModel(cfg.KFactor)
	runner := sim.NewRunner(topology, model)

	result := runner.Run(teams, rand.New(rand.NewSource(opts.seed)))

	fmt.Fprintln(os.Stderr, "\nFinal Four:")
	for _, g := range result.Rounds[bracket.FinalFour] {
		fmt.Fprintf(os.Stderr, "  (%d) %s def. (%d) %s\n", g.Winner.Seed, g.Winner.Name, g.Loser.Seed, g.Loser.Name)
	}
	championship := result.Rounds[bracket.Championship][0]
	fmt.Fprintln(os.Stderr, "\nChampionship:")
	fmt.Fprintf(os.Stderr, "  (%d) %s def. (%d) %s\n", championship.Winner.Seed, championship.Winner.Name,
		championship.Loser.Seed, championship.Loser.Name)
	fmt.Fprintf(os.Stderr, "\nChampion: (%d) %s\n", result.Champion.Seed, result.Champion.Name)

	bracketPath := opts.outBracket
	if bracketPath == "" {
		bracketPath = fmt.Sprintf("bracket_%s.txt", time.Now().Format(time.DateOnly))
	}
	bracketOut := outputWriter(bracketPath)
	if err := writers.WriteBracket(bracketOut, result); err != nil {
		fmt.Fprintf(os.Stderr, "Writing bracket failed: %v\n", err)
		os.Exit(3)
		return nil
	}
	if err := bracketOut.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Writing bracket failed on close: %v\n", err)
		os.Exit(3)
		return nil
	}
	if bracketPath != stdoutCLIName {
		fmt.Fprintf(os.Stderr, "Bracket saved to %s\n", bracketPath)
	}

	if opts.trials == 0 {
		return nil
	}

	table, err := runTrials(runner, teams, opts)
	if err != nil {
		return err
	}

	probsPath := opts.outProbs
	if probsPath == "" {
		probsPath = fmt.Sprintf("probs_%s.csv", time.Now().Format(time.DateOnly))
	}
	probsOut := outputWriter(probsPath)
	if err := writers.WriteProbabilities(probsOut, table); err != nil {
		fmt.Fprintf(os.Stderr, "Writing probabilities failed: %v\n", err)
		os.Exit(3)
		return nil
	}
	if err := probsOut.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Writing probabilities failed on close: %v\n", err)
		os.Exit(3)
		return nil
	}
	if probsPath != stdoutCLIName {
		fmt.Fprintf(os.Stderr, "Probabilities saved to %s\n", probsPath)
	}

	printTopTable(table, opts.topN)
	return nil
}

// runTrials drives the Monte Carlo aggregator behind a progress bar. The
// aggregator runs on its own goroutine and reports back through the
// bubbletea program.
func runTrials(runner sim.Runner, teams []bracket.Team, opts runOptions) (sim.ProbabilityTable, error) {
	agg := sim.Aggregator{
		Runner:   runner,
		Trials:   opts.trials,
		BaseSeed: opts.seed,
		Workers:  opts.workers,
	}

	model := ui.NewTrialRunner(fmt.Sprintf("Running %d trials", opts.trials), opts.trials)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	// Reporting every single trial floods the renderer on large runs.
	step := opts.trials / 100
	if step < 1 {
		step = 1
	}
	agg.Progress = func(completed, total int) {
		if completed%step == 0 || completed == total {
			p.Send(ui.TrialProgress{Completed: completed, Total: total})
		}
	}

	var table sim.ProbabilityTable
	var aggErr error
	go func() {
		table, aggErr = agg.Run(teams)
		if aggErr != nil {
			p.Send(ui.TrialsError{Err: aggErr})
		} else {
			p.Send(ui.TrialsComplete{})
		}
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}
	if m, ok := final.(ui.TrialRunner); ok && m.Err != nil {
		return nil, m.Err
	}
	if aggErr != nil {
		return nil, aggErr
	}
	return table, nil
}

func printTopTable(table sim.ProbabilityTable, topN int) {
	if topN > len(table) {
		topN = len(table)
	}
	if topN <= 0 {
		return
	}
	fmt.Printf("\nTop %d championship probabilities:\n", topN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Team\tSeed\tRegion\tF4%\tFinals%\tChamp%")
	for _, row := range table[:topN] {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1f%%\t%.1f%%\t%.1f%%\n",
			row.Team.Name, row.Team.Seed, row.Team.Region,
			row.Rounds[bracket.Elite8]*100,
			row.Rounds[bracket.FinalFour]*100,
			row.Rounds[bracket.Championship]*100)
	}
	w.Flush()
}

func main() {
	opts := runOptions{}
	app := &cli.App{
		Name:    "elo2bracket",
		Usage:   "Simulates a 64-team single-elimination tournament from ELO-style ratings",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        inputFlag,
				Aliases:     []string{"i"},
				Usage:       "The URL or path of the team table (CSV with team, elo, seed, and region columns)",
				Destination: &opts.input,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        htmlFlag,
				Usage:       "Input is an HTML page containing the team table rather than a CSV file",
				Destination: &opts.isHTML,
			},
			&cli.StringFlag{
				Name:        outBracketFlag,
				Aliases:     []string{"b"},
				Usage:       "Where to write the simulated bracket. Can be a file path or \"-\" (for stdout). Defaults to bracket_<date>.txt.",
				Destination: &opts.outBracket,
			},
			&cli.StringFlag{
				Name:        outProbsFlag,
				Aliases:     []string{"p"},
				Usage:       "Where to write the Monte Carlo probabilities CSV. Can be a file path or \"-\" (for stdout). Defaults to probs_<date>.csv.",
				Destination: &opts.outProbs,
			},
			&cli.IntFlag{
				Name:        trialsFlag,
				Aliases:     []string{"n"},
				Usage:       "Number of Monte Carlo trials (0 skips the probability run)",
				Destination: &opts.trials,
			},
			&cli.Int64Flag{
				Name:        seedFlag,
				Aliases:     []string{"s"},
				Usage:       "Random seed for reproducibility (defaults to a generated seed, printed to stderr)",
				Destination: &opts.seed,
			},
			&cli.StringFlag{
				Name:        configFlag,
				Aliases:     []string{"c"},
				Usage:       "Path to a YAML config overriding the K-factor and semifinal pairing",
				Destination: &opts.configPath,
			},
			&cli.IntFlag{
				Name:        topFlag,
				Usage:       "Number of teams in the championship probability summary",
				Value:       10,
				Destination: &opts.topN,
			},
			&cli.IntFlag{
				Name:        workersFlag,
				Usage:       "Number of concurrent trial workers (0 uses all CPUs)",
				Destination: &opts.workers,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if opts.trials < 0 {
				return fmt.Errorf("trial count cannot be negative: %d", opts.trials)
			}
			if !cCtx.IsSet(seedFlag) {
				seed, err := randomSeed()
				if err != nil {
					return err
				}
				opts.seed = seed
			}
			return cliHandle(opts)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
