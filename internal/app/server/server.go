package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/domain/employee"
	"taskdesk/internal/domain/task"
	"taskdesk/internal/platform/config"
	"taskdesk/internal/platform/db"
	"taskdesk/internal/platform/metrics"
	"taskdesk/internal/transport/http/api"
	employeeshandler "taskdesk/internal/transport/http/handlers/employees"
	taskshandler "taskdesk/internal/transport/http/handlers/tasks"
	"taskdesk/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	DB        *db.Database
	Router    http.Handler
	Metrics   *metrics.Collector
	Employees *employee.Service
	Tasks     *task.Service
}

// New connects to the database, prepares the schema and wires the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := database.Seed(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return Build(cfg, database), nil
}

// Build wires services and routes on top of an open database.
func Build(cfg config.Config, database *db.Database) *App {
	employees := employee.NewService(employee.NewStore(database), employee.DeletePolicy(cfg.DeletePolicy))
	tasks := task.NewService(task.NewStore(database), employees)

	app := &App{
		Config:    cfg,
		DB:        database,
		Employees: employees,
		Tasks:     tasks,
	}
	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}
	app.Router = app.routes()
	return app
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.RateLimit(a.Config.RateLimitPerMinute, time.Minute))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"message": "Hello World"})
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot())
		})
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.DBSession(a.DB, a.Metrics))
		employeeshandler.NewHandler(a.Employees).RegisterRoutes(r)
		taskshandler.NewHandler(a.Tasks).RegisterRoutes(r)
	})

	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr, "driver", a.DB.Driver, "deletePolicy", a.Employees.Policy())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", a.Config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
