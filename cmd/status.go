package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/system"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check storage backends and report system health",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		st := rt.sys.Status(cmd.Context())
		printStatus(cmd.OutOrStdout(), st)
		if !st.Healthy {
			return fmt.Errorf("system unhealthy: %d failed operations", st.Failures)
		}
		return nil
	},
}

func printStatus(w io.Writer, st system.Status) {
	fmt.Fprintf(w, "Healthy:         %s\n", yesNo(st.Healthy))
	fmt.Fprintf(w, "Scores backend:  %s (%s)\n", st.ScoresBackend, onlineText(st.ScoresOnline))
	fmt.Fprintf(w, "Settings:        %s\n", yesNo(st.SettingsReady))
	fmt.Fprintf(w, "Event log:       %s\n", yesNo(st.EventsReady))
	fmt.Fprintf(w, "Operations:      %d (%d failed)\n", st.Operations, st.Failures)
	fmt.Fprintf(w, "Uptime:          %s\n", st.Uptime.Round(time.Millisecond))
	fmt.Fprintf(w, "Generator:       %s (%d problems, %d fallbacks)\n",
		st.Generator.Version, st.Generator.ProblemsGenerated, st.Generator.Fallbacks)
	for _, e := range st.RecentErrors {
		fmt.Fprintf(w, "  %s  %-16s %s\n", e.Time.Format(time.TimeOnly), e.Op, e.Err)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onlineText(b bool) string {
	if b {
		return "online"
	}
	return "offline"
}
