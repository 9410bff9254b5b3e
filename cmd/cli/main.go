package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/cmd/cli/commands"
	"github.com/jakechorley/baddersbot/internal/config"
	"github.com/jakechorley/baddersbot/pkg/postgres"
	"github.com/jakechorley/baddersbot/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Baddersbot CLI - Manage club session allocations",
		Long:  `A CLI tool for allocating club players to monthly sessions, applying manual overrides, and comparing allocation runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.MaterialiseMonthCmd(appContext()))
	rootCmd.AddCommand(commands.RunAllocationCmd(appContext()))
	rootCmd.AddCommand(commands.EditRunCmd(appContext()))
	rootCmd.AddCommand(commands.ListRunsCmd(appContext()))
	rootCmd.AddCommand(commands.DiffRunsCmd(appContext()))
	rootCmd.AddCommand(commands.ReportCmd(appContext()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appContext returns the lazily initialized dependency struct. Commands
// capture the pointer; initApp fills it before any RunE executes.
func appContext() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	ctx := appContext()
	ctx.Ctx = context.Background()

	ctx.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx.Logger.Info("Starting application", zap.String("environment", env))

	ctx.Logger.Info("Loading configuration")
	ctx.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ctx.Logger.Debug("Configuration loaded successfully")

	ctx.Logger.Info("Connecting to database")
	ctx.Database, err = postgres.NewDB(ctx.Ctx, ctx.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx.Logger.Info("Running database migrations")
	if err := ctx.Database.RunMigrations(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	ctx.Logger.Info("Database initialized successfully")

	return nil
}
