// Package main is the entry point for the agenda API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agendape/agenda-api/internal/config"
	"github.com/agendape/agenda-api/internal/handler"
	"github.com/agendape/agenda-api/internal/middleware"
	natsclient "github.com/agendape/agenda-api/internal/nats"
	"github.com/agendape/agenda-api/internal/seed"
	"github.com/agendape/agenda-api/internal/service"
	"github.com/agendape/agenda-api/internal/store"
	"github.com/agendape/agenda-api/pkg/logger"
	"github.com/agendape/agenda-api/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting agenda API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "agenda-api", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS. The agenda works without it, so a failed connection
	// only disables lifecycle publishing.
	var natsClient *natsclient.Client
	var publisher service.LifecyclePublisher
	if cfg.NATSEnabled {
		natsClient, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("NATS unavailable, lifecycle publishing disabled", zap.Error(err))
			natsClient = nil
		} else {
			defer natsClient.Close()
			streamManager := natsclient.NewStreamManager(natsClient)
			if err := streamManager.EnsureStream(ctx); err != nil {
				log.Warn("failed to ensure stream, lifecycle publishing disabled", zap.Error(err))
			} else {
				publisher = streamManager
			}
		}
	}

	// Initialize the store and service
	eventStore := store.New()
	agendaSvc := service.NewAgendaService(eventStore, publisher, log)

	// Seed the store
	if cfg.SeedEnabled {
		records, err := seed.Records()
		if err != nil {
			log.Error("failed to load embedded seed data", zap.Error(err))
			os.Exit(1)
		}
		if cfg.SeedURL != "" {
			remote, err := seed.Fetch(ctx, cfg.SeedURL)
			if err != nil {
				log.Warn("failed to fetch remote seed data, using embedded snapshot", zap.Error(err))
			} else {
				records = remote
			}
		}
		loaded := agendaSvc.LoadRawRecords(ctx, records)
		log.Info("seeded event store", zap.Int("events", loaded))
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	eventHandler := handler.NewEventHandler(agendaSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/events", func(r chi.Router) {
			r.Get("/day/{date}", eventHandler.Day)
			r.Get("/week/{date}", eventHandler.Week)
			r.Get("/month/{date}", eventHandler.Month)
			r.Post("/filter", eventHandler.Filter)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireScope(middleware.ScopeAgendaWrite))
				r.Post("/", eventHandler.Create)
				r.Post("/import", eventHandler.Import)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireScope(middleware.ScopeAgendaWrite))
					r.Put("/", eventHandler.Update)
					r.Delete("/", eventHandler.Delete)
				})
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
