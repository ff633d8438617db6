// Package httpserver runs an http.Handler with configurable timeouts and
// graceful shutdown.
//
// Run blocks until the supplied context is cancelled, then calls
// http.Server.Shutdown bounded by the shutdown timeout so in-flight uploads
// can finish. Callers own signal handling, typically through
// signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Config reads HOST, PORT (default 5000) and the HTTP_* timeouts from the
// environment.
package httpserver
