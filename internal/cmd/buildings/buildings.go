// Package buildings parses building service flags and launches the service.
package buildings

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/skyline/internal/platform/cmd"
	server "github.com/louisbranch/skyline/internal/services/buildings/app"
)

// Config holds building command configuration.
type Config struct {
	Port     int    `env:"BUILDINGS_PORT" envDefault:"8095"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The building gRPC server port")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the building gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceBuildings, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceBuildings, options, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port, server.WithLogger(logger))
	})
}
