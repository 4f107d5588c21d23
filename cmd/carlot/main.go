// Package main is the entry point for the carlot catalog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carlot/internal/cache"
	"carlot/internal/catalog"
	"carlot/internal/config"
	"carlot/internal/database"
	"carlot/internal/handlers"
	"carlot/internal/middleware"
	"carlot/internal/router"
	"carlot/internal/storage"
	"carlot/internal/store"
)

func main() {
	// Text logs for development; switched to JSON below outside of it.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"facet_concurrency", cfg.FacetConcurrency,
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// Connect to PostgreSQL.
	db, err := database.Connect(startCtx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the development catalog (no-op if cars already exist).
	if cfg.IsDev() {
		if err := database.Seed(startCtx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Rate limit counters live in Valkey so every instance shares them.
	// Without Valkey each instance limits on its own. RATE_LIMIT=0 disables.
	var limiter middleware.Counter
	valkeyClient, err := cache.ConnectValkey(startCtx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
	switch {
	case cfg.RateLimit <= 0:
		slog.Warn("rate limiting disabled")
		if valkeyClient != nil {
			valkeyClient.Close()
		}
	case err != nil:
		slog.Warn("valkey unavailable, rate limiting in memory", "error", err)
		memLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		defer memLimiter.Stop()
		limiter = memLimiter
	default:
		defer valkeyClient.Close()
		limiter = cache.NewWindowCounter(valkeyClient, cfg.RateLimit, cfg.RateWindow)
	}

	// Object storage only resolves image keys; the API works without it.
	storageClient, err := storage.New(storage.Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBucket:  cfg.S3PublicBucket,
		PrivateBucket: cfg.S3PrivateBucket,
		PublicURL:     cfg.S3PublicURL,
		PresignTTL:    cfg.S3PresignTTL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Warn("s3 storage not configured, image keys served as stored")
	} else {
		slog.Info("s3 storage configured",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3PublicBucket,
			"presigned", cfg.S3PresignTTL > 0,
		)
	}

	// Stores and the catalog engine.
	carStore := store.NewCarStore(db)
	refStore := store.NewReferenceStore(db)
	aggregator := catalog.NewAggregator(carStore, cfg.FacetConcurrency)
	lister := catalog.NewLister(carStore)

	r := router.New(router.Options{
		Cars:      handlers.NewCars(aggregator, lister, carStore, refStore, storageClient),
		Admin:     handlers.NewAdmin(lister, carStore, refStore, storageClient),
		Limiter:   limiter,
		JWTSecret: []byte(cfg.JWTSecret),
		Timeout:   cfg.RequestTimeout,
		Ping:      db.PingContext,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
