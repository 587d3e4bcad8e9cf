package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"treewarden/internal/adapters/filesystem"
	"treewarden/internal/adapters/sqlite"
	"treewarden/internal/application"
	"treewarden/internal/application/commands"
	"treewarden/internal/config"
	"treewarden/internal/domain"
	"treewarden/internal/logging"
)

var (
	flags   config.Options
	verbose bool

	opts    config.Options
	schema  domain.Schema
	layout  *filesystem.Layout
	index   *sqlite.Index
	session *commands.Session
)

var rootCmd = &cobra.Command{
	Use:   "treewarden-cli",
	Short: "Create, validate and tidy a project folder layout",
	Long: `treewarden-cli keeps the folder tree of a project in line with a
declarative layout catalog.

The tree root (Assets by default) holds a base directory with the project's
own groups plus a few groups anchored at the root itself. The CLI creates
missing folders, reports drift, and moves unexpected top-level folders
into a quarantine folder.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logging.ConfigureRuntime("treewarden-cli", verbose)
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		log.Debug().Str("kind", application.KindOf(err).String()).Msg("command failed")
		teardown()
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.Project, "project", "", "project directory containing the tree root (env "+config.EnvProject+")")
	pf.StringVarP(&flags.Base, "base", "b", "", "base directory name under the tree root (env "+config.EnvBase+")")
	pf.StringVar(&flags.SettingsPath, "config", "", "settings file (default "+config.DefaultSettingsFile+")")
	pf.StringVar(&flags.Layout, "layout", "", "layout catalog file, .yml/.yaml or .toml (env "+config.EnvLayout+")")
	pf.StringVar(&flags.Index, "index", "", "SQLite index path; refreshed after changes (env "+config.EnvIndex+")")
	pf.BoolVar(&verbose, "verbose", false, "debug logging")
}

func setup() error {
	if err := config.LoadDotEnv("."); err != nil {
		return err
	}

	var err error
	opts, err = config.Resolve(flags)
	if err != nil {
		return err
	}
	schema, err = config.LoadSchema(opts.Layout)
	if err != nil {
		return err
	}
	layout = filesystem.NewLayout(opts.Project, opts.Marker)

	var sessionOpts []commands.SessionOption
	if opts.Index != "" {
		if err := openIndex(opts.Index); err != nil {
			return err
		}
		sessionOpts = append(sessionOpts, commands.WithRefresher(index))
	}

	session, err = commands.NewSession(layout, schema, sessionOpts...)
	if err != nil {
		return err
	}
	if opts.Base != "" {
		if err := session.SetBaseName(opts.Base); err != nil {
			return err
		}
	}

	log.Debug().
		Str("project", layout.ProjectDir()).
		Str("root", schema.Root).
		Str("base", opts.Base).
		Msg("session ready")
	return nil
}

func openIndex(dbPath string) error {
	idx := sqlite.NewIndex(layout.ProjectDir(), schema.Root, layout.MarkerName())
	if err := idx.Open(dbPath); err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	index = idx
	return nil
}

func teardown() error {
	if index == nil {
		return nil
	}
	err := index.Close()
	index = nil
	return err
}

// exitCode is 2 for usage errors, 1 for everything else
func exitCode(err error) int {
	if errors.Is(err, application.ErrInvalidInput) {
		return 2
	}
	return 1
}

// requireBase fails with a hint when no base directory name is configured
func requireBase() error {
	if session.Ready() {
		return nil
	}
	return &application.ValidationError{
		Field:   "base",
		Message: fmt.Sprintf("no base directory name: pass --base or set %s", config.EnvBase),
	}
}
