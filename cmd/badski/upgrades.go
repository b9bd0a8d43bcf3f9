package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/config"
	"github.com/vovakirdan/badski/internal/games/ski"
	"github.com/vovakirdan/badski/internal/platform/tui"
	"github.com/vovakirdan/badski/internal/storage"
)

var upgradesCmd = &cobra.Command{
	Use:   "upgrades",
	Short: "Show the profile and upgrade prices",
	Long: `Show points, level and every upgrade with its current level and price.

Examples:
  badski upgrades
  badski upgrades buy speed
  badski upgrades buy extra_life`,
	Args: cobra.NoArgs,
	Run:  runUpgrades,
}

var buyCmd = &cobra.Command{
	Use:       "buy <kind>",
	Short:     "Buy one upgrade with points",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.UpgradeKinds,
	Run:       runBuy,
}

func init() {
	upgradesCmd.AddCommand(buyCmd)
}

func openProfileStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func printProfile(p ski.Profile, cfg config.UpgradeConfig) {
	fmt.Printf("Level %d  -  %d points (%d earned)\n", p.Level(), p.Points, p.TotalEarned)
	fmt.Println()
	fmt.Printf("  %-12s  %-14s  %-8s  %s\n", "Kind", "Upgrade", "Have", "Price")
	fmt.Printf("  %-12s  %-14s  %-8s  %s\n", "----", "-------", "----", "-----")
	for _, kind := range config.UpgradeKinds {
		price := "max"
		if cost, ok := p.Upgrades.Cost(kind, cfg); ok {
			price = fmt.Sprintf("%d", cost)
		}
		fmt.Printf("  %-12s  %-14s  %-8s  %s\n", kind, tui.UpgradeLabel(kind), tui.UpgradeStatus(p.Upgrades, cfg, kind), price)
	}
}

func runUpgrades(_ *cobra.Command, _ []string) {
	store := openProfileStore()
	defer store.Close()

	p, err := store.LoadProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return
	}
	cfg, _, _ := ski.LoadConfig()
	printProfile(p, cfg.Upgrades)
}

func runBuy(_ *cobra.Command, args []string) {
	kind := args[0]
	if !slices.Contains(config.UpgradeKinds, kind) {
		fmt.Fprintf(os.Stderr, "Error: unknown upgrade %q\n", kind)
		fmt.Fprintln(os.Stderr, "Run 'badski upgrades' to see the kinds.")
		os.Exit(1)
	}

	store := openProfileStore()
	defer store.Close()

	cfg, _, _ := ski.LoadConfig()
	p, err := store.Purchase(kind, cfg.Upgrades)
	switch {
	case errors.Is(err, storage.ErrNotEnoughPoints):
		fmt.Println("Not enough points.")
		return
	case errors.Is(err, storage.ErrMaxLevel):
		fmt.Println("Already maxed out.")
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("Bought %s.\n\n", tui.UpgradeLabel(kind))
	printProfile(p, cfg.Upgrades)
}
