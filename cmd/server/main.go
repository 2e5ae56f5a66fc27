package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskdesk/internal/app/server"
	"taskdesk/internal/platform/config"
	"taskdesk/internal/platform/db"
	"taskdesk/internal/platform/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "taskdesk",
		Short: "Employee and task tracking API",
		Long: `taskdesk serves a JSON API for employees and the tasks assigned to them.

Configuration comes from the environment (optionally a .env file named by
ENV_FILE); flags override it. DATABASE_URL accepts postgres:// URLs or
sqlite:// file paths (default sqlite://database.db).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "database URL (overrides DATABASE_URL)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (overrides APP_ADDR)")
	serveCmd.Flags().StringVar(&cfg.DeletePolicy, "delete-policy", cfg.DeletePolicy, "what deleting an employee does to their tasks: orphan, restrict, cascade")
	root.Flags().AddFlagSet(serveCmd.Flags())

	var seed bool
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), cfg, seed)
		},
	}
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "insert demo data into an empty database")

	root.AddCommand(serveCmd, migrateCmd)
	return root
}

func serve(parent context.Context, cfg config.Config) error {
	_, closer := logging.Setup(cfg)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(contextOrBackground(parent), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}

func migrate(parent context.Context, cfg config.Config, seed bool) error {
	_, closer := logging.Setup(cfg)
	defer closer.Close()

	ctx := contextOrBackground(parent)
	if err := cfg.Validate(); err != nil {
		return err
	}
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if seed {
		if err := database.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	slog.Info("migrations applied", "driver", database.Driver)
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
