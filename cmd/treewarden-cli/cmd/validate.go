package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errDrift = errors.New("folder layout has drifted")

var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report missing and unexpected folders",
	Long: `Compare the tree with the layout. Missing folders are listed parent
first; a missing group hides its subfolders. Top-level folders that belong
to no group are listed as unexpected.

With --strict the command exits non-zero when anything is reported.

Examples:
  treewarden-cli validate -b Game
  treewarden-cli validate -b Game --strict`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBase(); err != nil {
			return err
		}

		report, err := session.RunValidate(cmd.Context())
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), report)
		if strict && !report.Clean() {
			return fmt.Errorf("%w: %d finding(s)", errDrift, len(report.Findings))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the tree does not match the layout")
	rootCmd.AddCommand(validateCmd)
}
