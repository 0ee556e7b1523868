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

	"github.com/starford/fretwork/internal/api"
	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/diagramservice"
	"github.com/starford/fretwork/internal/mcpserver"
	"github.com/starford/fretwork/internal/metrics"
	"github.com/starford/fretwork/internal/sse"
	"github.com/starford/fretwork/internal/storage"
	"github.com/starford/fretwork/internal/ui"
)

const outputPattern = "**/*.svg"

// App holds the components shared by every command.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	DB      *catalog.DB
	Library *storage.FS
	Output  *storage.FS
	Metrics *metrics.Metrics
	Service *diagramservice.Service

	sessions *ui.Sessions
}

// Open builds the logger, storage, catalogue and diagram service. The
// caller must Close the returned App.
func Open(opts ...Option) (*App, error) {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("library_path", cfg.Library.Path),
		slog.String("output_path", cfg.Output.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	library, err := storage.EnsureFS(cfg.Library.Path, cfg.Library.Pattern)
	if err != nil {
		return nil, fmt.Errorf("init library: %w", err)
	}
	output, err := storage.EnsureFS(cfg.Output.Path, outputPattern)
	if err != nil {
		return nil, fmt.Errorf("init output: %w", err)
	}

	db, err := catalog.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}
	if err := catalog.SeedBuiltins(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	// Run initial sync.
	if err := catalog.Sync(db, library, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	sessions := ui.NewSessions()
	m := metrics.New(sessions.Len)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Library:  library,
		Output:   output,
		Metrics:  m,
		sessions: sessions,
		Service: diagramservice.NewService(db,
			diagramservice.WithOutput(output),
			diagramservice.WithMetrics(m),
			diagramservice.WithSessions(sessions),
			diagramservice.WithEvents(app.events),
		),
	}, nil
}

// Close releases the catalogue.
func (a *App) Close() error {
	return a.DB.Close()
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	// SSE broker publishes session state as well as library changes.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	a, err := Open(append(opts, withEvents(broker))...)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, logger := a.Config, a.Logger

	apiRouter := api.NewRouter(a.Service, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, a.Output)

	// Build chi router.
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
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := a.DB.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}
	// Open event streams only end when the broker closes their channels.
	httpServer.RegisterOnShutdown(broker.Close)

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start library watcher with SSE callback.
	if cfg.Library.Watch {
		g.Go(func() error {
			err := catalog.Watch(gCtx, a.DB, a.Library, logger, func(kind, path string) {
				if kind != catalog.EventSkipped {
					a.Metrics.LibraryEvent()
				}
				broker.PublishLibraryEvent(kind, path)
			})
			if err != nil {
				logger.Error("library watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Drop idle sessions.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.Sessions.PruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if n := a.sessions.Prune(cfg.Sessions.TTL); n > 0 {
					logger.Debug("sessions pruned", slog.Int("count", n))
				}
			}
		}
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

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

		// Shutdown returns once handlers finish, so stop the remaining workers.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	a, err := Open(append([]Option{WithLogOutput(os.Stderr)}, opts...)...)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Config.Library.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := catalog.Watch(watchCtx, a.DB, a.Library, a.Logger, nil); err != nil {
				a.Logger.Error("library watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	srv := mcpserver.New(a.Service, a.DB, a.Library, a.Logger)
	a.Logger.Info("MCP server listening on stdio")
	return srv.ServeStdio()
}
