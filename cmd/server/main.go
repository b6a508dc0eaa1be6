package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"userhub/backend/internal/api"
	"userhub/backend/internal/common"
	"userhub/backend/internal/config"
	"userhub/backend/internal/db"
	"userhub/backend/internal/logging"
	"userhub/backend/internal/metrics"
	"userhub/backend/internal/routes"
)

func main() {
	// Captured before anything else so uptime covers startup
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.Environment); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Server starting up",
		"environment", cfg.Environment,
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)

	if err := run(cfg, startedAt); err != nil {
		logging.Fatal("Server stopped with error", "error", err.Error())
	}
	logging.Info("Server stopped")
}

func run(cfg *config.Config, startedAt time.Time) error {
	pool, err := db.InitPostgres(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()
	logging.Info("Connected to Postgres (sqlx)", "host", cfg.DB.Host, "database", cfg.DB.Name)

	if err := db.RunMigrations(pool); err != nil {
		return err
	}

	orm, err := db.InitPostgresORM(pool, cfg.IsProduction())
	if err != nil {
		return err
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	if err := metricsReg.RegisterDBStats(pool.DB, cfg.DB.Name); err != nil {
		return fmt.Errorf("register db stats collector: %w", err)
	}

	cache := newCache(cfg)
	defer cache.Close()

	deps := api.InitDependencies(cfg, pool, orm, cache, metricsReg, startedAt)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", routes.RegisterRoutes(deps))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server listening",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"frontend_url", cfg.FrontendURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newCache(cfg *config.Config) common.CacheInterface {
	if cfg.Redis.Enabled() {
		logging.Info("Using Redis cache", "addr", cfg.Redis.Addr())
		return common.NewRedisCacheService(common.NewRedisClient(cfg.Redis))
	}
	logging.Info("Using in-memory cache")
	return common.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
}
