package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"treewarden/internal/adapters/watcher"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever the tree changes",
	Long: `Watch the tree root and print a fresh validation report after every
burst of changes. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireBase(); err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		out := cmd.OutOrStdout()
		revalidate := func(ctx context.Context, changed []string) {
			log.Debug().Int("paths", len(changed)).Msg("tree changed")
			report, err := session.RunValidate(ctx)
			if err != nil {
				log.Error().Err(err).Msg("validate")
				return
			}
			printReport(out, report)
		}

		revalidate(ctx, nil)
		w := watcher.New(layout.Abs(schema.Root), debounce)
		return w.Run(ctx, revalidate)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before re-validating")
	rootCmd.AddCommand(watchCmd)
}
