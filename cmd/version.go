package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/protocol"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mathblat", version)
		fmt.Fprintln(cmd.OutOrStdout(), "protocol", protocol.Version)
	},
}
