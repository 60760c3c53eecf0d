package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COMMUNITYDASH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8002/account", cfg.API.BaseURL)
	require.Equal(t, "COMMUNITYDASH_TOKEN", cfg.API.TokenEnv)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, 5, cfg.UI.CommunityLimit)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://store.internal/account"
timeout = "3s"

[ui]
community_limit = 3
`), 0o600))
	t.Setenv("COMMUNITYDASH_CONFIG", path)
	t.Setenv("COMMUNITYDASH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://store.internal/account", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, 3, cfg.UI.CommunityLimit)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("COMMUNITYDASH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("COMMUNITYDASH_UI_COMMUNITY_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("COMMUNITYDASH_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.API.BaseURL = "http://example.test/account"
	cfg.UI.CommunityLimit = 4
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://example.test/account", got.API.BaseURL)
	require.Equal(t, 4, got.UI.CommunityLimit)
	require.Equal(t, cfg.API.Timeout, got.API.Timeout)
}

func TestLoadServerFromDotenv(t *testing.T) {
	t.Setenv("COMMUNITYD_ADDR", ":9999")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("COMMUNITYD_JWT_SECRET=from-dotenv\nCOMMUNITYD_ADDR=:1234\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("COMMUNITYD_JWT_SECRET") })

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.JWTSecret)
	require.Equal(t, ":9999", cfg.Addr, "process env wins over .env")
	require.Equal(t, 5, cfg.CommunityLimit)
	require.Equal(t, 720*time.Hour, cfg.TokenTTL)
}

func TestLoadServerRequiresSecret(t *testing.T) {
	t.Setenv("COMMUNITYD_JWT_SECRET", "  ")

	_, err := LoadServer(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}
