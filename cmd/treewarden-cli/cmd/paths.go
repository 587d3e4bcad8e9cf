package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print every folder the layout expects",
	Long: `Print the expected folders for the base directory name in creation
order. The filesystem is not read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBase(); err != nil {
			return err
		}
		paths, err := session.ExpectedPaths()
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
