package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookcourier/bookcourier/internal/app"
	"github.com/bookcourier/bookcourier/internal/cli"
	"github.com/bookcourier/bookcourier/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer application.Close()

	// Notifications render to stderr so command output stays pipeable.
	renderer := cli.NewRenderer(os.Stderr, application.Notifier)
	defer renderer.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cli.New(application)
	return root.ExecuteContext(ctx)
}
