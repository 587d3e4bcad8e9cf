package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
)

var dryRun bool

var remediateCmd = &cobra.Command{
	Use:   "remediate",
	Short: "Move unexpected top-level folders into quarantine",
	Long: `Validate the tree, then move every unexpected top-level folder into
the quarantine folder (Assets/Plugins/ThirdParty with the reference layout).
A folder whose name is already taken in quarantine is left in place and
reported; nothing is overwritten. The tree is validated again afterwards.

Examples:
  treewarden-cli remediate -b Game
  treewarden-cli remediate -b Game --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBase(); err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		report, err := session.RunValidate(ctx)
		if err != nil {
			return err
		}

		if dryRun {
			if len(report.Unexpected) == 0 {
				fmt.Fprintln(out, "nothing to do: no unexpected folders")
				return nil
			}
			quarantine := schema.QuarantinePath()
			for _, p := range report.Unexpected {
				fmt.Fprintf(out, "would move %s -> %s\n", p, path.Join(quarantine, path.Base(p)))
			}
			return nil
		}

		summary, err := session.RunRemediate(ctx)
		if summary != nil {
			printSummary(out, summary)
		}
		return err
	},
}

func init() {
	remediateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list the planned moves")
	rootCmd.AddCommand(remediateCmd)
}
