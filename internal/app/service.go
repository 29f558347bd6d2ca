// Package app assembles the HTTP application: it mounts every route
// collection, the docs and metrics endpoints, and owns the listener.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/okian/arith/internal/adapters/http/api"
	"github.com/okian/arith/internal/adapters/http/swagger"
	"github.com/okian/arith/internal/domain/health"
	"github.com/okian/arith/pkg/childlib"
	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/metrics"
	"github.com/okian/arith/pkg/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default server settings.
const (
	defaultAddr              = "0.0.0.0:8000"
	defaultTitle             = "Parent Module API"
	defaultVersion           = "1.0.0"
	defaultDiagnosticKey     = "TEST_KEY"
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// Sentinel errors.
var (
	ErrListen         = errors.New("listen failed")
	ErrAlreadyStarted = errors.New("app already started")
)

// Mount pairs a provider with the tags it is included with.
type Mount struct {
	Provider router.Provider
	Tags     []string
}

// App is the assembled HTTP application.
type App struct {
	mu sync.Mutex

	addr          string
	title         string
	version       string
	diagnosticKey string
	readTimeout   time.Duration
	writeTimeout  time.Duration
	metrics       bool
	docs          bool
	settings      router.Settings
	extra         []Mount

	log     logger.Logger
	handler http.Handler
	server  *http.Server
	bound   net.Addr
	served  chan error
}

// Option applies a configuration option to the App.
type Option func(*App)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(a *App) {
		if addr != "" {
			a.addr = addr
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithSettings injects the process settings read by the route handlers.
func WithSettings(s router.Settings) Option {
	return func(a *App) {
		a.settings = s
	}
}

// WithDiagnosticKey sets the settings key traced by handlers.
func WithDiagnosticKey(key string) Option {
	return func(a *App) {
		if key != "" {
			a.diagnosticKey = key
		}
	}
}

// WithInfo sets the title and version used by health and docs.
func WithInfo(title, version string) Option {
	return func(a *App) {
		if title != "" {
			a.title = title
		}
		if version != "" {
			a.version = version
		}
	}
}

// WithTimeouts sets the HTTP read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(a *App) {
		if read > 0 {
			a.readTimeout = read
		}
		if write > 0 {
			a.writeTimeout = write
		}
	}
}

// WithMetrics toggles the /metrics endpoint.
func WithMetrics(enabled bool) Option {
	return func(a *App) {
		a.metrics = enabled
	}
}

// WithDocs toggles the /docs and /openapi.yaml endpoints.
func WithDocs(enabled bool) Option {
	return func(a *App) {
		a.docs = enabled
	}
}

// WithProviders mounts additional route collections after the built-in ones.
func WithProviders(mounts ...Mount) Option {
	return func(a *App) {
		a.extra = append(a.extra, mounts...)
	}
}

// New assembles the application. The route set is fixed once New returns.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{
		addr:          defaultAddr,
		title:         defaultTitle,
		version:       defaultVersion,
		diagnosticKey: defaultDiagnosticKey,
		readTimeout:   defaultReadTimeout,
		writeTimeout:  defaultWriteTimeout,
		metrics:       true,
		docs:          true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get()
	}

	handler, err := a.assemble(ctx)
	if err != nil {
		return nil, err
	}
	a.handler = handler
	return a, nil
}

func (a *App) assemble(ctx context.Context) (http.Handler, error) {
	diag := api.Diagnostics{Settings: a.settings, Log: a.log.Named("controllers"), Key: a.diagnosticKey}
	checker := health.NewChecker(health.WithService(a.title, a.version))

	mounts := []Mount{
		{Provider: api.NewHealthController(checker, diag), Tags: []string{"Health"}},
		{Provider: api.NewMathController(diag), Tags: []string{"Math"}},
		{
			Provider: childlib.NewController(
				childlib.WithSettings(a.settings),
				childlib.WithLogger(a.log.Named("childlib")),
				childlib.WithDiagnosticKey(a.diagnosticKey),
			),
			Tags: []string{"Math"},
		},
	}
	mounts = append(mounts, a.extra...)

	srv := api.NewServer(a.log)
	for _, m := range mounts {
		if err := srv.Include(m.Provider, m.Tags...); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	srv.Register(ctx, mux)

	if a.docs {
		spec, err := swagger.Build(swagger.Info{Title: a.title, Version: a.version}, srv.Collections())
		if err != nil {
			return nil, err
		}
		swagger.Register(ctx, mux, spec)
	}

	metrics.SetEnabled(a.metrics)
	if a.metrics {
		mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	return api.RequestIDMiddleware(mux), nil
}

// Handler returns the assembled handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Addr returns the bound address once started, else the configured one.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bound != nil {
		return a.bound.String()
	}
	return a.addr
}

// Start binds the listener and serves in the background. A bind failure is
// returned immediately so the process can abort.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, a.addr, err)
	}

	a.server = &http.Server{
		Handler:           a.handler,
		ReadTimeout:       a.readTimeout,
		WriteTimeout:      a.writeTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	a.bound = ln.Addr()
	a.served = make(chan error, 1)

	a.log.Info(ctx, "starting HTTP server", logger.String("addr", a.bound.String()))
	go func(srv *http.Server, done chan<- error) {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}(a.server, a.served)
	return nil
}

// Done yields the serve loop's exit error. It is nil before Start.
func (a *App) Done() <-chan error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.served
}

// Stop shuts the server down gracefully within ctx.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.server
	a.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info(ctx, "server stopped")
	return nil
}
