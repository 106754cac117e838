package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devtracker/backend/config"
	"devtracker/backend/routes"
	"devtracker/backend/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is what every subcommand shares once config, logger and DB are up.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	deps   *routes.Deps
}

func setup() (*app, error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Error("initializing database failed", zap.Error(err))
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, deps: routes.NewDeps(db, cfg, logger, nil)}, nil
}

func (a *app) close() {
	a.deps.Close()
	_ = a.logger.Sync()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "devtracker",
		Short:        "Developer progress dashboard backend",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newStatsCmd(), newSyncCmd(), newStreakCmd(), newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			server := routes.NewApp(a.deps, a.cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("port", a.cfg.ServerPort))
				errc <- server.Listen(":" + a.cfg.ServerPort)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil {
				a.logger.Warn("shutdown failed", zap.Error(err))
			}
			return nil
		},
	}
}
