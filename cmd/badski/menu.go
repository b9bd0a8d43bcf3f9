package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/platform/tui"
	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a mode.
After a run ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  U            - Upgrade shop
  Q            - Quit

Examples:
  badski menu
  badski menu --fps 30
  badski menu --db ./badski.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.WantsShop {
			skiCfg, _, _ := ski.LoadConfig()
			goBack, shopErr := tui.RunShop(store, skiCfg.Upgrades, cfg.ScreenW, cfg.ScreenH)
			if shopErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", shopErr)
			}
			if goBack {
				continue
			}
			break
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		if gameID == ski.ModeMission.GameID() {
			ok, err := chooseMission(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if !ok {
				continue
			}
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each run
		cfg.Seed = time.Now().UnixNano()

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
