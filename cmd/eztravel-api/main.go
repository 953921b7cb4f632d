// README: Entry point; loads config, wires stores, the LLM gateway and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"eztravel/internal/ai"
	"eztravel/internal/config"
	httptransport "eztravel/internal/http"
	"eztravel/internal/infra"
	"eztravel/internal/logging"
	"eztravel/internal/metrics"
	"eztravel/internal/modules/cache"
	"eztravel/internal/modules/itinerary"
	"eztravel/internal/modules/meta"
	"eztravel/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	bootTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logs, err := logging.Setup(cfg.Log.Dir, cfg.Log.Level, os.Stdout)
	if err != nil {
		return err
	}
	defer logs.Close()
	logger := logs.App
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := infra.RunMigrations(cfg.DB.DSN); err != nil {
			logger.Error("migrations failed", "error", err)
		}
	}

	// A failed ping still yields a pool; the API boots degraded and /meta/health reports it.
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN, cfg.DB.Timeout)
	if err != nil && dbPool == nil {
		return err
	}
	if err != nil {
		logger.Error("database unreachable at boot", "error", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	backend, closeBackend, err := ai.NewBackend(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	defer closeBackend()
	gateway := ai.NewGateway(backend, cfg.LLM.Model, collector, logger.With("component", "llm"))

	userSvc := user.NewService(user.NewStore(dbPool, cfg.DB.Timeout))
	itinerarySvc := itinerary.NewService(
		itinerary.NewStore(dbPool, cfg.DB.Timeout),
		gateway,
		collector,
		logger.With("component", "itinerary"),
	)
	cacheSvc := cache.NewService(cache.NewStore(redisClient, cfg.Redis.CacheKey, cfg.DB.Timeout), logger)
	metaSvc := meta.NewService(meta.Deps{
		DB:        dbPool,
		DBTimeout: cfg.DB.Timeout,
		LLM:       gateway,
		BootTime:  bootTime,
		LogDir:    cfg.Log.Dir,
		Build: meta.BuildInfo{
			Version:   config.Version,
			Commit:    config.Commit,
			BuildTime: config.BuildTime,
		},
		Logger: logger,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Auth:        userSvc,
		Itineraries: itinerarySvc,
		Cache:       cacheSvc,
		Meta:        metaSvc,
		Metrics:     collector,
		Gatherer:    reg,
		Logger:      logger,
		AccessLog:   logs.HTTP,
		RateLimit:   cfg.RateLimit,
		Dev:         cfg.IsDev(),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.HTTP.Addr, "env", cfg.Env, "llm_provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.GenerateTimeout+5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
