package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/badski/internal/core"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/platform/tui"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  A/D, Left/Right  - Steer
  W/Up             - Accelerate (hold)
  Space            - Jump (hold), double tap fires a rocket
  F                - Fire a rocket
  P/Esc            - Pause
  R                - Restart (after the run ends)
  Q/Ctrl+C         - Quit

Missions ask for a scenario theme unless --theme is given.

Examples:
  badski play ski
  badski play ski --theme chase
  badski play ski_free --seed 42
  badski play ski_roadtest --config ./tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Scenario theme for missions (skips the picker)")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// chooseMission shows the theme picker for missions and pins the choice.
// It returns false when the user backed out.
func chooseMission(cfg core.RuntimeConfig) (bool, error) {
	selection, err := tui.RunMissionSelector(ski.Themes(), cfg)
	if err != nil {
		return false, err
	}
	if selection == nil {
		return false, nil
	}
	ski.SetMissionTheme(selection.ThemeID)
	return true, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'badski list' to see available modes.")
		os.Exit(1)
	}

	cfg := terminalConfig()

	if gameID == ski.ModeMission.GameID() {
		if flagTheme != "" {
			ski.SetMissionTheme(flagTheme)
		} else {
			ok, err := chooseMission(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			// User pressed back or quit
			if !ok {
				return
			}
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open profile storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - runs start from an empty profile
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
