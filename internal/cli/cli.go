// Package cli implements the tipout command line.
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mmynk/tipout/internal/config"
	"github.com/mmynk/tipout/internal/i18n"
	"github.com/mmynk/tipout/internal/metrics"
	"github.com/mmynk/tipout/internal/service"
	"github.com/mmynk/tipout/internal/storage"
	"github.com/mmynk/tipout/internal/storage/memory"
	"github.com/mmynk/tipout/internal/storage/sqlite"
	"github.com/mmynk/tipout/pkg/logging"
)

// Error carries the process exit code for main.
type Error struct {
	Code    int
	Message string
}

// Run executes the command line in argv.
func Run(ctx context.Context, argv []string) *Error {
	if err := NewCommand().Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}
	return nil
}

// NewCommand builds the root command.
func NewCommand() *cli.Command {
	var g globals
	return &cli.Command{
		Name:  "tipout",
		Usage: "Split pooled tips among your team",
		Flags: g.flags(),

		DisableSliceFlagSeparator: true,

		Commands: []*cli.Command{
			calcCommand(&g),
			historyCommand(&g),
			langCommand(&g),
			serveCommand(&g),
		},
	}
}

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
	dbPath     string
	lang       string
	ephemeral  bool
}

func (g *globals) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a YAML config file",
			Sources:     cli.EnvVars("TIPOUT_CONFIG"),
			Destination: &g.configPath,
		},
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Path to the local SQLite database (overrides storage.db_path)",
			Destination: &g.dbPath,
		},
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "Display language for this run: en or es",
			Destination: &g.lang,
		},
		&cli.BoolFlag{
			Name:        "ephemeral",
			Usage:       "Keep history in memory only",
			Destination: &g.ephemeral,
		},
	}
}

// app is the loaded configuration plus the session built from it.
type app struct {
	cfg     *config.Config
	store   storage.Store
	session *service.Session
	metrics *metrics.Metrics
	lang    i18n.Language
}

// open loads configuration, configures logging and starts a session.
// The caller must call close.
func (g *globals) open(ctx context.Context) (*app, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.dbPath != "" {
		cfg.Storage.DBPath = g.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	var store storage.Store
	if g.ephemeral {
		store = memory.New()
	} else {
		store, err = sqlite.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	m := metrics.New()
	defaultLang, err := i18n.ParseLanguage(cfg.I18n.DefaultLanguage)
	if err != nil {
		store.Close()
		return nil, err
	}
	session := service.NewSession(ctx, store,
		service.WithMetrics(m),
		service.WithDefaultLanguage(defaultLang),
	)

	a := &app{cfg: cfg, store: store, session: session, metrics: m, lang: session.Language()}
	if g.lang != "" {
		lang, err := i18n.ParseLanguage(g.lang)
		if err != nil {
			store.Close()
			return nil, err
		}
		a.lang = lang
	}
	return a, nil
}

func (a *app) translator() *i18n.Translator {
	return i18n.NewTranslator(a.lang)
}

func (a *app) close() {
	a.store.Close()
}
