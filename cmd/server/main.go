package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/filesmanager/internal/bootstrap"
	"github.com/dmitrymomot/filesmanager/pkg/httpserver"
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

	log := bootstrap.NewLogger(cfg, "api")
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

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(addr net.Addr, log *slog.Logger) {
			log.Info("Server running on port", slog.String("addr", addr.String()))
		}),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, app.Router())
	})

	if cfg.WorkerInline {
		w, err := app.NewWorker()
		if err != nil {
			return err
		}
		g.Go(w.Run(ctx))
	}

	return g.Wait()
}
