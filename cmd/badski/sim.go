package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/storage"
)

var (
	flagSimRuns    int
	flagSimMode    string
	flagSimMaxTime time.Duration
	flagSimSave    bool
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless simulations driven by the autopilot",
	Long: `Play runs without a terminal UI. An autopilot holds the throttle,
follows the path and steers around obstacles it sees ahead.
Runs still going when --max-time elapses are abandoned.

Examples:
  badski sim --runs 20 --seed 1
  badski sim --mode free --max-time 2m
  badski sim --save --db ./badski.db`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs; seeds count up from --seed")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "mission", "Mode: mission, free, roadtest")
	simCmd.Flags().StringVar(&flagTheme, "theme", "", "Scenario theme for missions (random if empty)")
	simCmd.Flags().DurationVar(&flagSimMaxTime, "max-time", 5*time.Minute, "Simulated time limit per run")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save results to the database profile")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log inventory changes too")
}

// simOptions is one batch of headless runs.
type simOptions struct {
	Mode     ski.Mode
	Runs     int
	BaseSeed int64
	TickRate int
	MaxTime  time.Duration
	ThemeID  string
}

// simSummary tallies a batch.
type simSummary struct {
	Runs            int
	Won, Lost, Left int
	Distance        float64
	Score           int
}

func (s simSummary) print(mode ski.Mode) {
	if s.Runs == 0 {
		return
	}
	n := float64(s.Runs)
	fmt.Println()
	fmt.Printf("Runs:          %d (%s)\n", s.Runs, mode)
	fmt.Printf("Won/Lost/Left: %d/%d/%d\n", s.Won, s.Lost, s.Left)
	fmt.Printf("Avg distance:  %.0fm\n", s.Distance/n)
	fmt.Printf("Avg score:     %.0f\n", float64(s.Score)/n)
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	// Fatal exits, so it only runs once simMain has closed the store.
	if err := simMain(logger); err != nil {
		logger.Fatal("simulation failed", "error", err)
	}
}

func simMain(logger *log.Logger) error {
	mode, err := parseMode(flagSimMode)
	if err != nil {
		return err
	}

	var store ski.Store
	if flagSimSave {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()
		store = s
	}

	opts := simOptions{
		Mode:     mode,
		Runs:     flagSimRuns,
		BaseSeed: resolveSeed(),
		TickRate: flagFPS,
		MaxTime:  flagSimMaxTime,
		ThemeID:  flagTheme,
	}
	sum, err := simulate(opts, store, logger)
	if err != nil {
		return err
	}
	sum.print(mode)
	return nil
}

// simulate plays opts.Runs autopilot runs. Results go to store when it
// is not nil; a profile that cannot be loaded stops the batch.
func simulate(opts simOptions, store ski.Store, logger *log.Logger) (simSummary, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	maxTicks := int(opts.MaxTime.Seconds() * float64(opts.TickRate))
	cfg, cat, themes := ski.LoadConfig()

	var sum simSummary
	for i := 0; i < opts.Runs; i++ {
		seed := opts.BaseSeed + int64(i)
		rep := storage.NewLogReporter(store, logger.With("run", i+1, "seed", seed))

		profile, err := rep.LoadProfile()
		if err != nil {
			return sum, fmt.Errorf("load profile for run %d: %w", i+1, err)
		}

		run := ski.NewRun(cfg, cat, themes.Themes, rep)
		run.Start(ski.Setup{
			Mode:        opts.Mode,
			Upgrades:    profile.Upgrades,
			PlayerLevel: profile.Level(),
			ThemeID:     opts.ThemeID,
			Seed:        seed,
			TickRate:    opts.TickRate,
		})

		pilot := ski.NewAutopilot()
		for t := 0; t < maxTicks && run.Phase() == ski.PhaseRunning; t++ {
			run.Step(pilot.Next(run))
		}

		switch run.Phase() {
		case ski.PhaseWon:
			sum.Won++
		case ski.PhaseLost:
			sum.Lost++
		default:
			sum.Left++
		}
		// Still running means the time limit hit.
		run.Exit()

		sum.Runs++
		sum.Distance += run.State().Distance
		sum.Score += run.State().Score
		if err := run.Err(); err != nil {
			logger.Error("run reported an error", "run", i+1, "error", err)
		}
	}
	return sum, nil
}
