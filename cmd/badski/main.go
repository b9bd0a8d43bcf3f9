// badski is a terminal skiing arcade: dodge rocks and trees, grab pickups
// and spend your points on upgrades between runs.
//
// Usage:
//
//	badski list              - List available modes
//	badski play <mode>       - Play a mode
//	badski menu              - Start menu to pick modes interactively
//	badski serve             - Start SSH server for remote play
//	badski scores <mode>     - Show high scores and recent runs
//	badski upgrades          - Show or buy upgrades
//	badski plan              - Print a generated mission and spawn plan
//	badski sim               - Run headless simulations with the autopilot
//	badski config [name]     - Print or install the default YAML configs
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.badski/badski.db)
//	--config <path>  - Load ski tuning from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/games/ski"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "badski",
	Short: "Bad Ski - downhill skiing in your terminal",
	Long: `Bad Ski is a terminal skiing arcade. Follow the slope, dodge rocks
and trees, collect pickups and spend your points on upgrades.

Available commands:
  list      - Show all modes
  play      - Play a mode directly
  menu      - Interactive menu with shop and scoreboard
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  upgrades  - Show or buy upgrades
  plan      - Print a generated mission and its spawns
  sim       - Run headless autopilot simulations

Examples:
  badski list
  badski play ski
  badski menu
  badski serve --ssh :2222
  badski scores ski_free`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		ski.SetConfigPath(flagConfig)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.badski/badski.db", "Path to profile and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ski tuning YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(upgradesCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
