package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockpick/internal/report"
)

// combos [--export file]: enumerate once and print the combination table.
func combosCmd() *cobra.Command {
	var exportTo string
	cmd := &cobra.Command{
		Use:   "combos",
		Short: "List every combination of --size items within --ceiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appCtx.Explorer.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderTable(out, report.Combinations(res.Combinations, res.Ceiling))
			fmt.Fprintf(out, "%s [inventory %s]\n", appCtx.Explorer.Status().Message, res.Digest)
			if cmd.Flags().Changed("export") {
				path, err := appCtx.ExportCombinations(cmd.Context(), exportTo)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "exported %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportTo, "export", "", "also write the table to this xlsx file (combinations.xlsx when empty)")
	return cmd
}
