// Command prospector discovers sales prospects across many platforms.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/prospector/internal/adapters/driving/cli"
	"github.com/custodia-labs/prospector/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	cli.SetBootstrap(build)

	if err := cli.Execute(ctx); err != nil {
		logger.Debug("command failed: %v", err)
		cancel()
		os.Exit(1)
	}
}
