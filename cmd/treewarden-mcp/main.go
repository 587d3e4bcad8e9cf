package main

import (
	"flag"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"treewarden/internal/adapters/filesystem"
	mcpadapter "treewarden/internal/adapters/mcp"
	"treewarden/internal/adapters/sqlite"
	"treewarden/internal/application/commands"
	"treewarden/internal/config"
	"treewarden/internal/logging"
)

func main() {
	var flags config.Options
	flag.StringVar(&flags.Project, "project", "", "project directory containing the tree root")
	flag.StringVar(&flags.Base, "base", "", "default base directory name")
	flag.StringVar(&flags.SettingsPath, "config", "", "settings file (default "+config.DefaultSettingsFile+")")
	flag.StringVar(&flags.Layout, "layout", "", "layout catalog file (.yml/.yaml/.toml)")
	flag.StringVar(&flags.Index, "index", "", "SQLite index refreshed after changes")
	quiet := flag.Bool("quiet", false, "discard logs instead of writing them to stderr")
	flag.Parse()

	// stdout carries the protocol
	var logOut io.Writer = os.Stderr
	if *quiet {
		logOut = io.Discard
	}
	logging.ConfigureTo("treewarden-mcp", logOut)

	if err := config.LoadDotEnv("."); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	opts, err := config.Resolve(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve config")
	}
	schema, err := config.LoadSchema(opts.Layout)
	if err != nil {
		log.Fatal().Err(err).Msg("load layout")
	}

	layout := filesystem.NewLayout(opts.Project, opts.Marker)

	var sessionOpts []commands.SessionOption
	if opts.Index != "" {
		idx := sqlite.NewIndex(layout.ProjectDir(), schema.Root, layout.MarkerName())
		if err := idx.Open(opts.Index); err != nil {
			log.Fatal().Err(err).Msg("open index")
		}
		defer idx.Close()
		sessionOpts = append(sessionOpts, commands.WithRefresher(idx))
	}

	session, err := commands.NewSession(layout, schema, sessionOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}
	if opts.Base != "" {
		if err := session.SetBaseName(opts.Base); err != nil {
			log.Fatal().Err(err).Msg("base name")
		}
	}

	mcpServer := server.NewMCPServer(
		"treewarden-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	mcpadapter.RegisterTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error().Err(err).Msg("treewarden-mcp")
		os.Exit(1)
	}
}
