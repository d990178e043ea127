package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics from the duel log",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer rt.close()
		ctx := cmd.Context()

		stats, err := rt.sys.DuelStats(ctx).Get()
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		totals := rt.sys.LoadPlayerTotals(ctx).Value
		printStats(cmd.OutOrStdout(), rt.player, stats, totals)
		return nil
	},
}

func printStats(w io.Writer, player string, s store.DuelStats, t system.PlayerTotals) {
	fmt.Fprintf(w, "Player:          %s\n", player)
	fmt.Fprintf(w, "Games played:    %d\n", t.GamesPlayed)
	fmt.Fprintf(w, "Lifetime score:  %d\n", t.TotalScore)
	if t.LastPlayedDate != "" {
		fmt.Fprintf(w, "Last played:     %s\n", t.LastPlayedDate)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions:        %d (%d networked, %d won)\n", s.Sessions, s.NetworkedDuel, s.Wins)
	fmt.Fprintf(w, "Rounds:          %d\n", s.Rounds)
	fmt.Fprintf(w, "Correct:         %d (%.0f%%)\n", s.Correct, s.Accuracy()*100)
	fmt.Fprintf(w, "Timed out:       %d\n", s.TimedOut)
	fmt.Fprintf(w, "Best session:    %d\n", s.BestScore)
	fmt.Fprintf(w, "Total points:    %d\n", s.TotalScore)
}
