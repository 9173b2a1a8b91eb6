// Package skyline parses client flags, builds a building source and renders
// the resulting view states.
package skyline

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/skyline/internal/platform/cmd"
	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	platformgrpc "github.com/louisbranch/skyline/internal/platform/grpc"
	"github.com/louisbranch/skyline/internal/platform/i18n"
	"github.com/louisbranch/skyline/internal/platform/logging"
	"github.com/louisbranch/skyline/internal/platform/timeouts"
	buildingservice "github.com/louisbranch/skyline/internal/services/buildings/api/grpc/buildings"
	"github.com/louisbranch/skyline/internal/services/buildings/client"
	"github.com/louisbranch/skyline/internal/services/buildings/render"
	"github.com/louisbranch/skyline/internal/services/buildings/server"
	buildingsqlite "github.com/louisbranch/skyline/internal/services/buildings/storage/sqlite"
	"github.com/louisbranch/skyline/internal/services/buildings/storage/stub"
	"go.uber.org/zap"
)

// Building sources.
const (
	SourceStub   = "stub"
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

// Output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Config holds skyline command configuration.
type Config struct {
	Source   string   `env:"SOURCE" envDefault:"stub"`
	Addr     string   `env:"BUILDINGS_ADDR" envDefault:"localhost:8095"`
	DBPath   string   `env:"BUILDINGS_DB_PATH"`
	Seed     []string `env:"BUILDINGS_SEED" envDefault:"Test Building" envSeparator:","`
	Format   string   `env:"FORMAT" envDefault:"text"`
	Locale   string   `env:"LOCALE" envDefault:"en-US"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"warn"`
	Filter   string
	Search   string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Building source (stub, sqlite, remote)")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Building service address for the remote source")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite path for the sqlite source")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format (text, html)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for placeholders and error messages")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Filter, "filter", "", "Keep only the building with this exact name, filtered locally")
	fs.StringVar(&cfg.Search, "search", "", "Ask the source for buildings with this exact name")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	switch cfg.Source {
	case SourceStub, SourceSQLite, SourceRemote:
	default:
		return fmt.Errorf("unknown source %q", cfg.Source)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	switch cfg.Format {
	case FormatText, FormatHTML:
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "buildings.db")
	}
	return nil
}

// Run loads the home screen into a client, then applies the configured
// search and filter. Every published view state is rendered to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if out == nil {
		out = os.Stdout
	}
	logger, err := entrypoint.NewLogger(entrypoint.ServiceSkyline, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSkyline, options, func(ctx context.Context) error {
		source, closeSource, err := openSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeSource()
		return show(ctx, cfg, source, out, logger)
	})
}

func show(ctx context.Context, cfg Config, source client.Source, out io.Writer, logger *zap.Logger) error {
	printer := i18n.NewPrinter(cfg.Locale)
	observer, renderErr := newRenderer(cfg.Format, out, printer)

	c := client.New(source, client.WithLogger(logger))
	c.AddSubscription(observer)

	home := render.Button{Action: func() error { return c.ShowHomeScreen(ctx) }}
	if err := home.Tap(); err != nil {
		return describe(err, printer)
	}
	if query := strings.TrimSpace(cfg.Search); query != "" {
		if err := c.SearchBuildings(ctx, query); err != nil {
			return describe(err, printer)
		}
	}
	if name := strings.TrimSpace(cfg.Filter); name != "" {
		c.FilterBuildings(name)
	}
	if err := renderErr(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func newRenderer(format string, out io.Writer, printer *i18n.Printer) (client.Observer, func() error) {
	if format == FormatHTML {
		r := &render.HTMLRenderer{W: out, Printer: printer}
		return r.Render, func() error { return r.Err }
	}
	r := &render.TextRenderer{W: out, Printer: printer}
	return r.Render, func() error { return r.Err }
}

func openSource(ctx context.Context, cfg Config, logger *zap.Logger) (client.Source, func(), error) {
	switch cfg.Source {
	case SourceSQLite:
		store, err := buildingsqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open building store: %w", err)
		}
		if err := store.Seed(ctx, cfg.Seed...); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("seed building store: %w", err)
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Warn("close building store", zap.Error(err))
			}
		}
		return server.New(store, server.WithLogger(logger)), closeStore, nil
	case SourceRemote:
		conn, err := platformgrpc.DialWithHealth(
			ctx,
			nil,
			cfg.Addr,
			buildingservice.ServiceName,
			timeouts.GRPCDial,
			logging.Printf(logger),
			platformgrpc.DefaultClientDialOptions()...,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("dial building service at %s: %w", cfg.Addr, err)
		}
		closeConn := func() {
			if err := conn.Close(); err != nil {
				logger.Warn("close building connection", zap.Error(err))
			}
		}
		return buildingservice.NewRemote(conn, buildingservice.WithLocale(cfg.Locale)), closeConn, nil
	default:
		return server.New(stub.Fixture(), server.WithLogger(logger)), func() {}, nil
	}
}

// describe prefixes a domain error with its localized user message.
func describe(err error, printer *i18n.Printer) error {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return err
	}
	return fmt.Errorf("%s %w", printer.Text(string(code)), err)
}
