package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/games/ski/course"
	"github.com/vovakirdan/badski/internal/games/ski/spawn"
	"github.com/vovakirdan/badski/internal/storage"
)

var (
	flagPlanMode    string
	flagPlanLevel   int
	flagPlanTo      float64
	flagPlanProfile bool
	flagPlanPath    bool
)

// freePathMeters is how much free-run course --path prints when --to is unset.
const freePathMeters = 1000.0

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print a generated mission and spawn plan as YAML",
	Long: `Generate the course and spawn plan a run would start with and print
them as YAML. The same seed always produces the same plan.

Examples:
  badski plan --seed 7
  badski plan --mode free --to 500
  badski plan --theme chase --level 3
  badski plan --profile --db ./badski.db`,
	Run: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPlanMode, "mode", "mission", "Mode: mission, free, roadtest")
	planCmd.Flags().IntVar(&flagPlanLevel, "level", 1, "Player level used for course length and spawn odds")
	planCmd.Flags().StringVar(&flagTheme, "theme", "", "Scenario theme for missions (random if empty)")
	planCmd.Flags().Float64Var(&flagPlanTo, "to", 0, "Only print spawns up to this distance in meters (0 = all)")
	planCmd.Flags().BoolVar(&flagPlanProfile, "profile", false, "Use upgrades and level from the database profile")
	planCmd.Flags().BoolVar(&flagPlanPath, "path", false, "Include the path points (mission line, or sampled free course)")
}

// planDump is the YAML document printed by the plan command.
type planDump struct {
	Mode    string          `yaml:"mode"`
	Seed    int64           `yaml:"seed"`
	Level   int             `yaml:"level"`
	Chances spawn.Chances   `yaml:"chances"`
	Mission *course.Mission `yaml:"mission,omitempty"`
	Path    course.Polyline `yaml:"path,omitempty"`
	Entries []spawn.Entry   `yaml:"entries"`
}

// parseMode maps a mode name or registry id to a Mode.
func parseMode(name string) (ski.Mode, error) {
	for _, m := range []ski.Mode{ski.ModeMission, ski.ModeFree, ski.ModeRoadTest} {
		if name == m.String() || name == m.GameID() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want mission, free or roadtest)", name)
}

// resolveSeed returns the --seed flag, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func runPlan(_ *cobra.Command, _ []string) {
	mode, err := parseMode(flagPlanMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setup := ski.Setup{
		Mode:        mode,
		PlayerLevel: flagPlanLevel,
		ThemeID:     flagTheme,
		Seed:        resolveSeed(),
		TickRate:    flagFPS,
	}
	if flagPlanProfile {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		p, err := store.LoadProfile()
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
			os.Exit(1)
		}
		setup.Upgrades = p.Upgrades
		setup.PlayerLevel = p.Level()
	}

	cfg, cat, themes := ski.LoadConfig()
	run := ski.NewRun(cfg, cat, themes.Themes, nil)
	run.Start(setup)

	dump := planDump{
		Mode:    mode.String(),
		Seed:    setup.Seed,
		Level:   max(setup.PlayerLevel, 1),
		Chances: run.Chances(),
		Entries: run.Plan().Entries(),
	}
	if flagPlanTo > 0 {
		dump.Entries = run.Plan().Window(0, flagPlanTo)
	}
	if m := run.Mission(); m != nil {
		mission := *m
		if !flagPlanPath {
			mission.Path = nil
		}
		dump.Mission = &mission
	}
	if p, ok := run.Course().(course.Procedural); ok && flagPlanPath {
		to := flagPlanTo
		if to <= 0 {
			to = freePathMeters
		}
		dump.Path = p.Sample(to, run.Config().Course.SampleStepMeters)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(dump); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding plan: %v\n", err)
		os.Exit(1)
	}
}
