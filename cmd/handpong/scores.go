package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hand-pong/internal/platform/tui"
	"github.com/vovakirdan/hand-pong/internal/storage"
)

var (
	flagScoresRounds      bool
	flagScoresInteractive bool
	flagScoresClear       bool
	flagScoresLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top single-player wins, best score first and the fastest
win breaking ties.

Examples:
  handpong scores
  handpong scores --rounds          # recent rounds of every mode
  handpong scores -i                # interactive table
  handpong scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRounds, "rounds", false, "List recent rounds instead of the leaderboard")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every leaderboard entry")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", storage.DefaultLeaderboardSize, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("Leaderboard cleared.")

	case flagScoresInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}

	case flagScoresRounds:
		printRounds(store)

	default:
		printLeaderboard(store)
	}
}

func printLeaderboard(store *storage.Store) {
	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("Hand Pong Leaderboard")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Beat the AI in 'handpong play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-5s  %-5s  %-6s  %s\n", "Rank", "Name", "Score", "Time", "Level", "Date")
	fmt.Printf("  %-4s  %-20s  %-5s  %-5s  %-6s  %s\n", "----", "----", "-----", "----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-20s  %-5d  %02d:%02d  %-6s  %s\n",
			i+1, e.Username, e.Score, e.TimeSecs/60, e.TimeSecs%60, e.Difficulty,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printRounds(store *storage.Store) {
	rounds, err := store.RecentRounds(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	fmt.Println("Recent rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds played yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-20s  %-5s  %-20s  %s\n", "Date", "Mode", "Level", "Left", "Score", "Right", "Time")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-6s  %-6s  %-20s  %d-%-3d  %-20s  %02d:%02d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Difficulty,
			r.Player1, r.Score1, r.Score2, r.Player2, r.Duration/60, r.Duration%60)
	}
}
