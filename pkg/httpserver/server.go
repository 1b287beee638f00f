package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	opts options

	mu  sync.Mutex
	srv *http.Server
}

func New(opts ...Option) *Server {
	o := options{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{opts: o}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		ErrorLog:     slog.NewLogLogger(s.opts.logger.Handler(), slog.LevelError),
	}
	s.srv = srv
	s.mu.Unlock()

	s.opts.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdown()
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) && runErr == nil {
			runErr = errors.Join(ErrStart, err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = errors.Join(ErrStart, err)
		}
	}

	for _, h := range s.opts.stopHooks {
		h()
	}
	s.opts.logger.InfoContext(ctx, "http server stopped")
	return runErr
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
