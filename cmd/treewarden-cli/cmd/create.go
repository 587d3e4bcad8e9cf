package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create every missing folder of the layout",
	Long: `Create the base directory, every group anchor and every required
subfolder, with a marker file in each. Existing folders are kept, so the
command can be repeated safely.

Examples:
  treewarden-cli create --base Game
  treewarden-cli create -b Game --project ~/work/my-game`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBase(); err != nil {
			return err
		}

		result, err := session.RunCreate(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range result.Created {
			fmt.Fprintln(out, mutedStyle.Render("+ "+p))
		}
		fmt.Fprintln(out, successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
