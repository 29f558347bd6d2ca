package main

import (
	"context"
	"os"
	"runtime"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/okian/arith/internal/app"
	"github.com/okian/arith/internal/config"
	"github.com/okian/arith/internal/environment"
	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/metrics"
)

const (
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		// The logger isn't available yet.
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	env, err := environment.Load(ctx, cfg.EnvFile)
	if err != nil {
		log.Fatal(ctx, "failed to load settings file", logger.String("env_file", cfg.EnvFile), logger.Error(err))
	}
	log.Info(ctx, "settings loaded", logger.String("source", env.Source()), logger.Int("keys", env.Len()))

	a, err := buildApp(ctx, cfg, env, log)
	if err != nil {
		log.Fatal(ctx, "failed to assemble application", logger.Error(err))
	}
	if err := a.Start(ctx); err != nil {
		log.Fatal(ctx, "failed to start HTTP server", logger.Error(err))
	}

	go func() {
		if err := <-a.Done(); err != nil {
			log.Fatal(ctx, "HTTP server failed", logger.Error(err))
		}
	}()

	if cfg.MetricsEnabled {
		go startSystemMetricsUpdater(ctx)
	}

	shutdownTimeout := time.Duration(cfg.ShutdownTimeoutMS) * time.Millisecond
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info(ctx, "shutting down server...")
				cancel()
				return a.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Info(ctx, "application exited", logger.Int("code", exitCode))
	os.Exit(exitCode)
}

// buildApp maps configuration onto the application options.
func buildApp(ctx context.Context, cfg *config.Config, env *environment.Environment, log logger.Logger) (*app.App, error) {
	return app.New(ctx,
		app.WithLogger(log),
		app.WithAddr(cfg.Addr),
		app.WithSettings(env),
		app.WithDiagnosticKey(cfg.DiagnosticKey),
		app.WithInfo(cfg.Title, cfg.Version),
		app.WithTimeouts(
			time.Duration(cfg.ReadTimeoutMS)*time.Millisecond,
			time.Duration(cfg.WriteTimeoutMS)*time.Millisecond,
		),
		app.WithMetrics(cfg.MetricsEnabled),
		app.WithDocs(cfg.DocsEnabled),
	)
}

// startSystemMetricsUpdater refreshes system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics samples memory, goroutines and average GC pause.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
