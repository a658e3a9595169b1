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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilkin0/mediagw/internal/api/handlers"
	"github.com/ilkin0/mediagw/internal/api/routes"
	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/health"
	"github.com/ilkin0/mediagw/internal/logger"
	custommiddleware "github.com/ilkin0/mediagw/internal/middleware"
	"github.com/ilkin0/mediagw/internal/scheduler"
	"github.com/ilkin0/mediagw/internal/service"
	"github.com/ilkin0/mediagw/internal/upstream"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadGateway()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(logger.Init(cfg.Env, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting media gateway",
		slog.String("version", "1.0.0"),
		slog.String("upstream", cfg.UpstreamURL),
	)

	upstreamClient := upstream.NewClient(cfg.UpstreamURL, &http.Client{})
	proxyService := service.NewProxyService(upstreamClient)

	// Upstream reachability probe
	upstreamStatus := health.NewStatus()
	sched := scheduler.New(health.NewProber(upstreamClient, upstreamStatus), cfg.HealthInterval)
	sched.Start(ctx)

	r := chi.NewRouter()

	r.Use(custommiddleware.CORS(cfg.AllowedOrigins))
	r.Use(logger.RequestID)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.Metrics)

	r.Get("/health", handlers.Health(upstreamStatus))
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/files", routes.FileRoutes(proxyService, custommiddleware.NewRateLimiters(cfg.RateLimit)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("server starting",
		slog.String("port", cfg.Port),
		slog.String("address", fmt.Sprintf("http://localhost:%s", cfg.Port)),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed",
			slog.String("error", err.Error()),
			slog.String("port", cfg.Port),
		)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
