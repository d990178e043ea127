package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear high scores and/or saved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, _ := cmd.Flags().GetBool("scores")
		settings, _ := cmd.Flags().GetBool("settings")
		yes, _ := cmd.Flags().GetBool("yes")
		if !scores && !settings {
			return errors.New("nothing to reset: pass --scores and/or --settings")
		}

		var what []string
		if scores {
			what = append(what, "high scores")
		}
		if settings {
			what = append(what, "settings")
		}
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Reset %s? [y/N] ", strings.Join(what, " and "))
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		rt, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer rt.close()
		ctx := cmd.Context()

		if scores {
			if err := rt.sys.ClearScores(ctx).Err; err != nil {
				return fmt.Errorf("clear scores: %w", err)
			}
		}
		if settings {
			if err := rt.sys.ResetSettings(ctx).Err; err != nil {
				return fmt.Errorf("reset settings: %w", err)
			}
		}
		fmt.Fprintf(out, "Reset %s.\n", strings.Join(what, " and "))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("scores", false, "Clear the high-score board")
	resetCmd.Flags().Bool("settings", false, "Restore default settings")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
