package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/filesmanager/internal/bootstrap"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	log := bootstrap.NewLogger(cfg, "worker")
	logger.SetAsDefault(log)

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("failed to close dependencies", logger.Error(err))
		}
	}()

	w, err := app.NewWorker()
	if err != nil {
		return err
	}
	return w.Run(ctx)()
}
