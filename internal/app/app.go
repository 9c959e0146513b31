package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/info-backend/internal/config"
	"github.com/heartmarshall/info-backend/internal/service/record"
	"github.com/heartmarshall/info-backend/internal/transport/middleware"
	"github.com/heartmarshall/info-backend/internal/transport/rest"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "info"

// App is the assembled HTTP application: store, service, handlers and
// middleware. Create it with New and release it with Close.
type App struct {
	cfg        *config.Config
	log        *slog.Logger
	handler    http.Handler
	limiter    *middleware.RateLimiter
	closeStore func()
}

// Run is the application entry point. It loads configuration, initializes
// the logger, opens the record store and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("driver", cfg.Database.NormalizedDriver()),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
	}

	return a.Serve(ctx, ln)
}

// New wires the store selected by cfg.Database into the record service and
// the HTTP handler chain.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	svc := record.NewService(logger, store, cfg.Records.MaxSearchLength)

	metrics := middleware.NewMetrics(metricsNamespace)
	mux := newRouter(
		rest.NewRecordHandler(svc, logger, cfg.Server.MaxBodyBytes),
		rest.NewHealthHandler(svc, BuildVersion()),
		metrics.Handler(),
	)

	a := &App{cfg: cfg, log: logger, closeStore: closeStore}

	var limit middleware.Middleware
	if cfg.RateLimit.RequestsPerMinute > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		limit = a.limiter.Limit(cfg.RateLimit.RequestsPerMinute)
	}

	a.handler = middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
		// Instrument stays innermost so it sees the pattern the mux matched.
		metrics.Instrument(),
	)(mux)
	return a, nil
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("health_url", healthURL(ln.Addr())),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err == nil {
		a.log.Info("server stopped")
	}
	return err
}

// Close stops background workers and releases the record store.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.closeStore != nil {
		a.closeStore()
	}
}

// healthURL renders a clickable health URL, using localhost for wildcard
// listen addresses.
func healthURL(addr net.Addr) string {
	host, port := addr.String(), ""
	if tcp, ok := addr.(*net.TCPAddr); ok {
		host, port = tcp.IP.String(), strconv.Itoa(tcp.Port)
		if tcp.IP == nil || tcp.IP.IsUnspecified() {
			host = "localhost"
		}
		host = net.JoinHostPort(host, port)
	}
	return "http://" + host + "/health"
}
