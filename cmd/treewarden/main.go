package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"treewarden/internal/adapters/filesystem"
	"treewarden/internal/adapters/sqlite"
	"treewarden/internal/adapters/tui"
	"treewarden/internal/application/commands"
	"treewarden/internal/config"
	"treewarden/internal/logging"
)

func main() {
	var flags config.Options
	flag.StringVar(&flags.Project, "project", "", "project directory containing the tree root")
	flag.StringVar(&flags.Base, "base", "", "initial base directory name")
	flag.StringVar(&flags.SettingsPath, "config", "", "settings file (default "+config.DefaultSettingsFile+")")
	flag.StringVar(&flags.Layout, "layout", "", "layout catalog file (.yml/.yaml/.toml)")
	flag.StringVar(&flags.Index, "index", "", "SQLite index refreshed after changes")
	logFile := flag.String("log-file", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if err := run(flags, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags config.Options, logFile string) error {
	// The terminal belongs to the TUI
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.ConfigureTo("treewarden", logOut)

	if err := config.LoadDotEnv("."); err != nil {
		return err
	}
	opts, err := config.Resolve(flags)
	if err != nil {
		return err
	}
	schema, err := config.LoadSchema(opts.Layout)
	if err != nil {
		return err
	}

	// Initialize adapters
	layout := filesystem.NewLayout(opts.Project, opts.Marker)

	var sessionOpts []commands.SessionOption
	if opts.Index != "" {
		idx := sqlite.NewIndex(layout.ProjectDir(), schema.Root, layout.MarkerName())
		if err := idx.Open(opts.Index); err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()
		sessionOpts = append(sessionOpts, commands.WithRefresher(idx))
	}

	session, err := commands.NewSession(layout, schema, sessionOpts...)
	if err != nil {
		return err
	}
	if opts.Base != "" {
		if err := session.SetBaseName(opts.Base); err != nil {
			return err
		}
	}

	// Create and run TUI app
	app := tui.NewApp(context.Background(), session)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
