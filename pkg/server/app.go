package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TradeLens/internal/handler/live"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	applogger "TradeLens/pkg/logger"
)

// sweepInterval is how often idle rate-limit buckets are dropped.
const sweepInterval = 5 * time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg     *config.Config
	log     *applogger.Logger
	http    *xhttp.Server
	hub     *live.Hub
	limiter *ratelimit.Limiter
}

// New creates a new App. hub and limiter may be nil when disabled.
func New(cfg *config.Config, log *applogger.Logger, httpServer *xhttp.Server, hub *live.Hub, limiter *ratelimit.Limiter) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		http:    httpServer,
		hub:     hub,
		limiter: limiter,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts every component and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	bg, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.hub != nil {
		if err := a.hub.Start(bg); err != nil {
			return err
		}
	}
	if a.limiter != nil {
		go a.limiter.Run(bg, sweepInterval)
	}

	if err := a.http.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		if a.hub != nil {
			a.hub.Stop()
		}
		return err
	}
	a.log.Info("tradelens started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("backend", a.cfg.Backend.BaseURL),
		applogger.Int("port", a.cfg.Server.Port))

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown(cancel)
}

// shutdown cancels background work so in-flight refreshes abort, closes
// live connections, then drains in-flight HTTP requests.
func (a *App) shutdown(cancelBackground context.CancelFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	cancelBackground()
	var firstErr error
	if a.hub != nil {
		a.hub.Stop()
	}
	if err := a.http.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}
	a.log.Info("shutdown complete")
	return firstErr
}
