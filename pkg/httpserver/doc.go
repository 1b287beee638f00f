// Package httpserver runs an http.Handler until a context is cancelled and
// then shuts it down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
