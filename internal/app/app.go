package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gloryco/thewell/internal/config"
	"github.com/gloryco/thewell/internal/guidance/service"
	httpH "github.com/gloryco/thewell/internal/http/handlers"
	"github.com/gloryco/thewell/internal/observability"
	"github.com/gloryco/thewell/internal/platform/logger"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config
	Guider service.Guider

	metrics      *observability.Metrics
	clients      Clients
	health       *httpH.HealthHandler
	server       *http.Server
	otelShutdown func(context.Context) error
}

// New wires every component from cfg. It never dials the completion engine;
// a missing Redis only disables analytics.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if log == nil {
		l, err := logger.New(cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: observability.DefaultServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
	})

	var metrics *observability.Metrics
	if cfg.HTTP.EnableMetrics {
		metrics = observability.NewMetrics()
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	guider, err := wireGuider(log, cfg, clients, metrics)
	if err != nil {
		_ = clients.Close()
		return nil, err
	}

	health := httpH.NewHealthHandler()
	srv := wireHTTP(log, cfg, guider, health, metrics)

	log.Info("app wired",
		"mode", guider.Mode(),
		"engine", cfg.Engine.Type,
		"route", cfg.Guidance.RoutePath,
		"analytics", clients.AnalyticsEnabled(),
	)

	return &App{
		Log:          log,
		Config:       cfg,
		Guider:       guider,
		metrics:      metrics,
		clients:      clients,
		health:       health,
		server:       srv,
		otelShutdown: otelShutdown,
	}, nil
}

// Handler exposes the HTTP handler for in-process use.
func (a *App) Handler() http.Handler { return a.server.Handler }

// Run serves until ctx is cancelled, then drains within the configured
// shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		a.Log.Info("http server draining", "timeout", a.Config.HTTP.ShutdownTimeout.Duration.String())
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if err := a.clients.Close(); err != nil && a.Log != nil {
		a.Log.Warn("close clients failed", "error", err)
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
