package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "mesa-decision/internal/adapter/http"
	"mesa-decision/internal/adapter/postgres"
	"mesa-decision/internal/adapter/predictor"
	redisadapter "mesa-decision/internal/adapter/redis"
	"mesa-decision/internal/adapter/usecase"
	"mesa-decision/internal/config"
	"mesa-decision/internal/config/configs"
	"mesa-decision/internal/core/catalog"
	"mesa-decision/internal/core/pipeline"
	"mesa-decision/internal/core/port"
	"mesa-decision/internal/core/targeting"
	"mesa-decision/internal/db"
	"mesa-decision/internal/metrics"
	"mesa-decision/internal/scheduler"
)

// main is the entry point of the decision service. It loads configuration,
// optionally migrates and seeds the campaign database, warms the catalog
// cache, wires the pipeline and serves HTTP until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler).With(slog.String("env", cfg.Env))
	}

	if err = run(cfg, logger); err != nil {
		logger.Error("service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("demo catalog seeded")
	}

	rdb, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	cache := catalog.NewCache(postgres.NewCatalogRepository(pool, logger), cfg.Engine.RefreshTimeout, logger, m)
	refresher := scheduler.NewCatalogRefresher(cache, cfg.Engine.RefreshInterval, logger)
	if err = refresher.Start(ctx); err != nil {
		return err
	}
	defer refresher.Stop()

	heuristic, err := pipeline.NewHeuristic(cfg.Prediction.DefaultCTR, cfg.Prediction.DefaultCVR)
	if err != nil {
		return err
	}
	svc := usecase.NewAdUseCase(usecase.Stages{
		Retrieval:  pipeline.NewRetrieval(cache, targeting.NewMatcher()),
		Filter:     pipeline.NewFilter(redisadapter.NewCounterStore(rdb), cfg.Engine.CounterTimeout, logger, m),
		Prediction: pipeline.NewPrediction(newPredictor(cfg.Prediction, postgres.NewStatsRepository(pool), logger), heuristic, cfg.Prediction.Timeout, logger, m),
		Ranking:    pipeline.NewRanking(),
		Rerank:     pipeline.NewRerank(cfg.Engine.MaxPerAdvertiser, cfg.Engine.DefaultLimit),
	}, logger, m)

	tracker := redisadapter.NewTracker(rdb, cfg.Engine.FrequencyWindow)
	handler := httpadapter.NewHandler(svc, cache, tracker, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// newPredictor returns the configured scoring backend, or nil for the
// heuristic-only setup.
func newPredictor(cfg configs.Prediction, stats predictor.StatsReader, logger *slog.Logger) port.Predictor {
	switch cfg.BackendName() {
	case configs.PredictionHistorical:
		return predictor.NewHistorical(stats, cfg.HistoryWindow, cfg.HistoryTTL, cfg.DefaultCTR, cfg.DefaultCVR)
	case configs.PredictionRemote:
		return predictor.NewRemote(predictor.RemoteConfig{
			URL:      cfg.RemoteURL,
			Timeout:  cfg.Timeout,
			Failures: cfg.BreakerFailures,
			Cooldown: cfg.BreakerCooldown,
		}, logger)
	default:
		return nil
	}
}
