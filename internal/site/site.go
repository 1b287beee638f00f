package site

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/internal/examples"
	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/clientip"
	"github.com/dmitrymomot/formkit/pkg/cookie"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

var ErrInvalidConfig = errors.New("site: invalid configuration")

// Config wires the site to its collaborators.
type Config struct {
	Title        string
	Catalog      *examples.Catalog
	Store        submissions.Store
	Cookies      *cookie.Manager
	CookieName   string
	Capacity     int
	CheckTimeout time.Duration
	Logger       *slog.Logger
	// ProxyHeaders are trusted for the client address, in priority order.
	ProxyHeaders []string
	// Ready are readiness checks served on /readyz.
	Ready []func(context.Context) error
}

// Site is the demo web application.
type Site struct {
	title    string
	catalog  *examples.Catalog
	store    submissions.Store
	log      *slog.Logger
	views    *views
	visitors *visitors
	formOpts []form.Option
	errors   handler.ErrorHandler[handler.Context]
	router   chi.Router
}

func New(cfg Config) (*Site, error) {
	if cfg.Catalog == nil || cfg.Cookies == nil {
		return nil, errors.Join(ErrInvalidConfig, errors.New("catalog and cookies are required"))
	}
	if cfg.Store == nil {
		cfg.Store = submissions.NewMemory(submissions.DefaultCapacity)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Title == "" {
		cfg.Title = "Form Handling Demo"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "formkit_visitor"
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1024
	}

	vw, err := newViews(cfg.Catalog, NewHighlighter())
	if err != nil {
		return nil, err
	}

	s := &Site{
		title:    cfg.Title,
		catalog:  cfg.Catalog,
		store:    cfg.Store,
		log:      cfg.Logger.With(logger.Component("site")),
		views:    vw,
		visitors: newVisitors(cfg.Capacity),
		formOpts: []form.Option{form.WithLogger(cfg.Logger), form.WithCheckTimeout(cfg.CheckTimeout)},
	}
	s.errors = handler.NewErrorHandler(cfg.Logger, handler.ErrorHandlerConfig{
		ErrorPage:  vw.errorPage,
		ErrorToast: vw.toast,
	})

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.New(cfg.ProxyHeaders...).Middleware)
	r.Use(accessLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(cfg.Logger))
	r.Get("/readyz", httpserver.HealthCheckHandler(cfg.Logger, cfg.Ready...))

	r.Group(func(r chi.Router) {
		r.Use(visitorMiddleware(cfg.Cookies, cfg.CookieName))
		r.Get("/", wrap(s, s.index))
		r.Route("/examples/{example}", func(r chi.Router) {
			r.Post("/fields/{field}", wrap(s, s.changeField, binder.Path(), binder.Signals()))
			r.Post("/fields/{field}/touch", wrap(s, s.touchField, binder.Path()))
			r.Post("/submit", wrap(s, s.submit, binder.Path(), binder.Signals(), binder.Form()))
			r.Post("/reset", wrap(s, s.reset, binder.Path()))
			r.Delete("/snapshot", wrap(s, s.clearSnapshot, binder.Path()))
			r.Get("/state", wrap(s, s.state, binder.Path()))
			r.Get("/submissions", wrap(s, s.submissions, binder.Path(), binder.Query()))
		})
	})
	r.NotFound(wrap(s, func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}))

	s.router = r
	return s, nil
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels in-flight checks of every visitor form.
func (s *Site) Close() {
	s.visitors.closeAll()
}

func wrap[R any](s *Site, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errors),
	)
}

// accessLogger logs one record per request once the response is written.
func accessLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				log.InfoContext(r.Context(), "access",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					logger.Status(ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					logger.Duration(time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
