package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/api"
	"github.com/jask/communitydash/internal/auth"
	"github.com/jask/communitydash/internal/config"
	"github.com/jask/communitydash/internal/database"
	"github.com/jask/communitydash/internal/database/repository"
	"github.com/jask/communitydash/internal/logging"
	"github.com/jask/communitydash/internal/service"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "communityd",
		Short:         "Community store: HTTP API over sqlite",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")
	root.AddCommand(newServeCmd(), newTokenCmd(), newMigrateCmd(), newResetCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openStore loads config, opens the database and migrates it.
func openStore() (config.ServerConfig, *sql.DB, error) {
	cfg, err := config.LoadServer(envFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cfg, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return cfg, nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return cfg, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			if cfg.SeedDemo {
				if err := database.SeedDemo(ctx, db); err != nil {
					return fmt.Errorf("seed demo: %w", err)
				}
				logger.Info("demo data seeded", zap.String("address", database.DemoAddress))
			}

			s := &api.Server{
				Communities: &service.CommunityService{
					Communities: repository.NewCommunityRepo(db),
					Limit:       cfg.CommunityLimit,
				},
				Accounts: repository.NewAccountRepo(db),
				Tokens:   auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL),
				Log:      logger,
			}
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           s.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", cfg.Addr), zap.Int("community_limit", cfg.CommunityLimit))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("listen: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down", zap.Duration("grace", cfg.ShutdownGrace))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <address>",
		Short: "Ensure an account exists and print a bearer token for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			acct, err := repository.NewAccountRepo(db).Ensure(cmd.Context(), args[0], database.Now())
			if err != nil {
				return fmt.Errorf("ensure account: %w", err)
			}
			tok, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL).Issue(acct.Address)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all accounts and communities",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := (&service.MaintenanceService{DB: db}).Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "store reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
