package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"playerapi/internal/config"
	"playerapi/internal/httpx"
	"playerapi/internal/platform/logger"
	"playerapi/internal/platform/metrics"
	"playerapi/internal/player"
)

// pinger is satisfied by *pgxpool.Pool; nil means no database to check.
type pinger interface {
	Ping(ctx context.Context) error
}

type deps struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Manager
	repo    player.Repository
	db      pinger
}

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error(context.Background(), "load config", logger.Error(err))
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := deps{cfg: cfg, log: log, metrics: metrics.NewManager()}
	if cfg.MemoryStore {
		log.Warn(ctx, "using in-memory player store; data is lost on exit")
		d.repo = player.NewMemoryRepo()
	} else {
		pool, err := openDB(ctx, cfg.DBDSN)
		if err != nil {
			log.Error(ctx, "cannot open database", logger.String("dsn", redactDSN(cfg.DBDSN)), logger.Error(err))
			os.Exit(1)
		}
		defer pool.Close()
		log.Info(ctx, "database connection OK")
		d.repo = player.NewPostgresRepo(pool, cfg.DBTimeout)
		d.db = pool
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(ctx, d),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", logger.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error(ctx, "server error", logger.Error(err))
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "graceful shutdown failed", logger.Error(err))
	}
}

// newRouter wires routes and middleware. ctx bounds background work such as
// the rate limiter's janitor.
func newRouter(ctx context.Context, d deps) http.Handler {
	svc := player.NewService(d.repo,
		player.WithLogger(d.log.Named("player")),
		player.WithMetrics(d.metrics),
	)
	playerHandler := player.NewHTTPHandler(svc, d.log.Named("player-http"))

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.db != nil {
			pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.db.Ping(pingCtx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", d.metrics.Handler())

	playerHandler.Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, d.cfg.RateLimitRPS, d.cfg.RateLimitBurst)

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log.Named("http")),
		httpx.RecoveryMiddleware(d.log.Named("http")),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
		httpx.MetricsMiddleware(d.metrics),
	)
	return otelhttp.NewHandler(handler, "playerapi")
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
