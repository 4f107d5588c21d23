// Package router sets up the HTTP routes and middleware chains of the car
// catalog API. Public read endpoints and the token-guarded admin group
// share the global stack of recovery, logging, headers and rate limiting.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"carlot/internal/handlers"
	"carlot/internal/middleware"
)

// Options carries the handler groups and middleware settings.
type Options struct {
	Cars  *handlers.Cars
	Admin *handlers.Admin

	// Limiter counts requests per client; nil disables rate limiting.
	Limiter middleware.Counter
	// JWTSecret verifies admin bearer tokens. Empty rejects every admin call.
	JWTSecret []byte
	// Timeout bounds each request's context; zero means no limit.
	Timeout time.Duration
	// Ping reports whether the database is reachable; nil skips the check.
	Ping func(ctx context.Context) error
}

// New creates and returns the configured Chi router.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}
	if opts.Timeout > 0 {
		r.Use(chimw.Timeout(opts.Timeout))
	}

	r.NotFound(jsonStatus(http.StatusNotFound, "not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "method not allowed"))

	r.Get("/health", healthHandler(opts.Ping))

	// Public catalog.
	r.Get("/cars-filter", opts.Cars.Filters)
	r.Get("/cars", opts.Cars.List)
	r.Get("/cars/slug/*", opts.Cars.Detail)
	for segment, kind := range handlers.ReferencePaths {
		r.Get("/"+segment, opts.Cars.References(kind))
	}

	// Admin API, bearer token required.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(opts.JWTSecret))

		r.Get("/cars", opts.Admin.ListCars)
		r.Post("/cars", opts.Admin.CreateCar)
		r.Put("/{kind}/{id}", opts.Admin.PutReference)
		r.Delete("/{kind}/{id}", opts.Admin.DeleteReference)
	})

	return r
}

// healthHandler reports liveness, and database reachability when ping is
// set.
func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				slog.Warn("health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

func jsonStatus(status int, msg string) http.HandlerFunc {
	body := []byte(`{"error":"` + msg + `"}`)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}
}
