// Package internal provides the main application initialization and runtime logic.
package internal

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
	"golang.org/x/sync/errgroup"

	"github.com/starford/wunjo/internal/api"
	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/objstore"
	"github.com/starford/wunjo/internal/sse"
	"github.com/starford/wunjo/internal/syncer"
	"github.com/starford/wunjo/internal/vault"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{mode: ModeSync}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("mode", app.mode),
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("bucket", cfg.Storage.Bucket),
		slog.String("log_level", cfg.App.LogLevel.String()))

	v, err := vault.New(cfg.Vault.Path, cfg.Vault.AssetDir, logger)
	if err != nil {
		return fmt.Errorf("init vault: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	objects, err := objstore.NewS3(ctx, objstore.Options{
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	pipeline := syncer.New(v, db, objects, syncer.Dirs{
		Contents: cfg.Vault.ContentsDir,
		Events:   cfg.Vault.EventsDir,
		Days:     cfg.Vault.DaysDir,
	}, logger)

	switch app.mode {
	case ModeSync:
		res, err := pipeline.Run(ctx)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		logger.Info("Sync finished", slog.Int("events", res.Events), slog.Int("days", res.Days))
		return nil

	case ModeWatch:
		return runWatch(ctx, pipeline, logger, nil)

	case ModeServe:
		return runServe(ctx, cfg, db, pipeline, logger)

	default:
		return fmt.Errorf("unknown mode: %s", app.mode)
	}
}

// runWatch runs an initial sync and then watches the vault until the
// process is signalled to stop.
func runWatch(ctx context.Context, pipeline *syncer.Pipeline, logger *slog.Logger, cb syncer.SyncCallback) error {
	if res, err := pipeline.Run(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	} else if cb != nil {
		cb(res)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return pipeline.Watch(ctx, cb)
}

// runServe runs the watcher and the HTTP API side by side. Every completed
// sync is pushed to SSE subscribers.
func runServe(ctx context.Context, cfg *Config, db *database.DB, pipeline *syncer.Pipeline, logger *slog.Logger) error {
	broker := sse.NewBroker()
	defer broker.Close()

	apiRouter := api.NewRouter(db, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runWatch(gCtx, pipeline, logger, func(res *syncer.Result) {
			broker.PublishSyncCompleted(res)
		})
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
