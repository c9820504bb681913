package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X stockpick/cmd/stockpick/commands.version=...".
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		// No catalog needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stockpick", version)
		},
	}
}
