// Command formkit-demo serves the form handling examples.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/internal/config"
	"github.com/dmitrymomot/formkit/internal/examples"
	"github.com/dmitrymomot/formkit/internal/site"
	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/clientip"
	"github.com/dmitrymomot/formkit/pkg/cookie"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("formkit-demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			site.VisitorExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	store, closeStore, err := submissions.Open(ctx, cfg.Redis, cfg.SubmissionCapacity, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("close submission store", logger.Error(err))
		}
	}()

	catalog, err := examples.New(examples.Options{
		UsernameCheckDelay:   cfg.UsernameCheckDelay,
		SubmitDelay:          cfg.SubmitDelay,
		FormStateSubmitDelay: cfg.FormStateSubmitDelay,
		Store:                store,
		Logger:               log,
	})
	if err != nil {
		return err
	}

	// Outside production a per-process secret is enough; visitors simply
	// start over after a restart.
	cookies, err := cookie.NewFromConfig(cfg.Cookie, uuid.NewString()+uuid.NewString())
	if err != nil {
		return err
	}

	var ready []func(context.Context) error
	if p, ok := store.(submissions.Pinger); ok {
		ready = append(ready, p.Ping)
	}

	app, err := site.New(site.Config{
		Catalog:      catalog,
		Store:        store,
		Cookies:      cookies,
		CookieName:   cfg.VisitorCookie,
		Capacity:     cfg.VisitorStoreCapacity,
		CheckTimeout: cfg.CheckTimeout,
		Logger:       log,
		ProxyHeaders: cfg.ProxyHeaders,
		Ready:        ready,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(app.Close),
	)
	return srv.Run(ctx, app)
}
