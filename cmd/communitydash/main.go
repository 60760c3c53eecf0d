package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/client"
	"github.com/jask/communitydash/internal/config"
	"github.com/jask/communitydash/internal/logging"
	"github.com/jask/communitydash/internal/secrets"
	"github.com/jask/communitydash/internal/tui"
)

func main() {
	root := &cobra.Command{
		Use:           "communitydash",
		Short:         "Manage your Passport communities from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd.Context())
		},
	}
	root.AddCommand(newLoginCmd(), newLogoutCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runPanel(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.NewFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	token := resolveToken(cfg)
	if token == "" {
		logger.Warn("no store token configured; requests will be unauthorized",
			zap.String("env", cfg.API.TokenEnv))
	}
	store := client.New(cfg.API.BaseURL, client.WithToken(token), client.WithTimeout(cfg.API.Timeout))
	panel := tui.New(ctx, store, tui.Options{
		Limit:      cfg.UI.CommunityLimit,
		APIKeysURL: cfg.UI.APIKeysURL,
		Log:        logger,
	})

	logger.Info("panel starting", zap.String("store", cfg.API.BaseURL))
	p := tea.NewProgram(panel, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}
	return nil
}

// resolveToken prefers the env var, then the secrets store, then the config file.
func resolveToken(cfg config.Config) string {
	env := strings.TrimSpace(cfg.API.TokenEnv)
	if env == "" {
		env = "COMMUNITYDASH_TOKEN"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if tok, err := secrets.FetchToken(cfg.API.BaseURL); err == nil {
		return tok
	}
	return strings.TrimSpace(cfg.API.Token)
}

func newLoginCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token for the configured community store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(token) == "" {
				return errors.New("--token is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := secrets.StoreToken(cfg.API.BaseURL, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token saved for %s\n", cfg.API.BaseURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "JWT issued by `communityd token`")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token for the configured community store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := secrets.DeleteToken(cfg.API.BaseURL); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged out of %s\n", cfg.API.BaseURL)
			return nil
		},
	}
}
