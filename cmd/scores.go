package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/store"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score board",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer rt.close()
		ctx := cmd.Context()

		if path, _ := cmd.Flags().GetString("export"); path != "" {
			n, err := rt.sys.ExportScoresCSV(ctx, path).Get()
			if err != nil {
				return fmt.Errorf("export scores: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d scores to %s\n", n, path)
			return nil
		}

		board, err := rt.sys.LoadHighScores(ctx).Get()
		if err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		if d, _ := cmd.Flags().GetString("tier"); d != "" {
			board = board.FilterDifficulty(d)
		}
		printBoard(cmd.OutOrStdout(), board)
		return nil
	},
}

func init() {
	scoresCmd.Flags().String("export", "", "Write the board to a CSV file instead of printing it")
	scoresCmd.Flags().String("tier", "", "Only show scores earned at this tier")
}

func printBoard(w io.Writer, board store.HighScores) {
	if len(board) == 0 {
		fmt.Fprintln(w, "No high scores yet.")
		return
	}
	fmt.Fprintf(w, "%-4s %-20s %6s  %-12s %s\n", "#", "NAME", "SCORE", "TIER", "DATE")
	for i, e := range board {
		fmt.Fprintf(w, "%-4d %-20s %6d  %-12s %s\n",
			i+1, truncate(e.Name, 20), e.Score, e.Difficulty, e.Timestamp.Local().Format("2006-01-02 15:04"))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
