// Package main renders the building home screen from a configured source.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	skylinecmd "github.com/louisbranch/skyline/internal/cmd/skyline"
	"github.com/louisbranch/skyline/internal/platform/config"
)

func main() {
	cfg, err := skylinecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := skylinecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
