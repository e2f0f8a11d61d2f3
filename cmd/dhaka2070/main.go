// Package main provides the entry point for the dhaka2070 catalog server.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ashique01/dhaka2070/internal/admin"
	"github.com/ashique01/dhaka2070/internal/auth"
	"github.com/ashique01/dhaka2070/internal/catalog"
	"github.com/ashique01/dhaka2070/internal/config"
	"github.com/ashique01/dhaka2070/internal/metrics"
	"github.com/ashique01/dhaka2070/internal/middleware"
	"github.com/ashique01/dhaka2070/internal/storage"
	"github.com/ashique01/dhaka2070/internal/upload"
)

const version = "1.0.0"

// maxRequestBody caps inbound request bodies; large enough for an image part.
const maxRequestBody = 12 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dhaka2070: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments use actual environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		//nolint:errcheck
		store.Close()
	}()

	if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var uploader catalog.Uploader
	if cfg.UploadSinkURL != "" {
		uploader = upload.NewClient(cfg.UploadSinkURL, upload.WithAPIKey(cfg.UploadSinkKey))
	} else {
		logger.Warn("no upload sink configured, image uploads disabled")
		uploader = upload.Disabled{}
	}

	router := setupRouter(cfg, store, issuer, uploader, logLevel, logger)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsListenAddr,
		Handler:           metricsMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsListenAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server: %w", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	return nil
}

// setupRouter configures the root HTTP router with all routes and middleware.
func setupRouter(cfg *config.Config, store storage.Storage, issuer *auth.TokenIssuer, uploader catalog.Uploader, logLevel *slog.LevelVar, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.MaxBodySize(maxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(middleware.HTTPLogging(logger))

	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(store))

	r.Mount("/city", catalog.Routes(store, uploader, logger))
	r.Mount("/admin", admin.Routes(store, issuer, logLevel, logger))

	return r
}

// metricsMux serves Prometheus metrics on the dedicated listener.
func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// healthHandler returns OK if the process is alive.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler returns OK once the database answers a ping.
func readyHandler(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			//nolint:errcheck
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write([]byte(`{"status":"ok"}`))
	}
}
