package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var refreshIndex bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "List the directories recorded in the SQLite index",
	Long: `List the directories recorded in the SQLite index with their depth
and marker state. Without --index the per-project default database under
$XDG_DATA_HOME/treewarden is used.

Examples:
  treewarden-cli index --refresh
  treewarden-cli index --index ./tree.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if index == nil {
			if err := openIndex(opts.Index); err != nil {
				return err
			}
		}

		if refreshIndex {
			stats, err := index.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf(
				"synced %d dir(s): %d added, %d updated, %d deleted",
				stats.DirsScanned, stats.NodesAdded, stats.NodesUpdated, stats.NodesDeleted)))
		}

		nodes, err := index.Nodes()
		if err != nil {
			return err
		}
		last, err := index.LastSync()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if last == 0 {
			fmt.Fprintln(out, "index is empty, run with --refresh")
			return nil
		}
		for _, n := range nodes {
			marker := " "
			if n.HasMarker {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %d %s\n", marker, n.Depth, n.Path)
		}
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d dir(s), last sync %s",
			len(nodes), time.Unix(last, 0).Format(time.RFC3339))))
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&refreshIndex, "refresh", false, "sync the index with the tree first")
	rootCmd.AddCommand(indexCmd)
}
