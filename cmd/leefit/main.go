package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/baomythoi/leefit/internal/cli"
	"github.com/baomythoi/leefit/internal/config"
	"github.com/baomythoi/leefit/internal/logging"
)

func main() {
	cfg := config.LoadClientConfig()

	level := "warn"
	if cfg.Debug {
		level = "debug"
	}
	logging.Setup(level, "development")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		stop()
		os.Exit(1)
	}
}
