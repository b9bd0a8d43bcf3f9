package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/registry"
	"github.com/vovakirdan/badski/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores and recent runs for a mode",
	Long: `Display the top 10 high scores and the latest runs for a mode.

Examples:
  badski scores ski
  badski scores ski_free --recent 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show (0 to hide)")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'badski list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'badski play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		fmt.Println()
		if highScore, err := store.HighScore(gameID); err == nil {
			fmt.Printf("Best: %d\n", highScore)
		}
	}

	if flagRecent <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-8s  %-8s  %-9s  %-8s  %s\n", "Result", "Score", "Distance", "Time", "Date")
	fmt.Printf("  %-8s  %-8s  %-9s  %-8s  %s\n", "------", "-----", "--------", "----", "----")
	for _, r := range runs {
		result := "crashed"
		switch {
		case r.Won:
			result = "won"
		case r.Exited:
			result = "left"
		}
		fmt.Printf("  %-8s  %-8d  %-9s  %-8s  %s\n",
			result, r.Score,
			fmt.Sprintf("%.0fm", r.Distance),
			r.Duration.Round(100*time.Millisecond).String(),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if p, err := store.LoadProfile(); err == nil && p.BestFreeDistance > 0 {
		fmt.Println()
		fmt.Printf("Best free-ski distance: %.0fm\n", p.BestFreeDistance)
	}
}
