package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds panel configuration.
type Config struct {
	API APIConfig `mapstructure:"api"`
	Log LogConfig `mapstructure:"log"`
	UI  UIConfig  `mapstructure:"ui"`
}

// APIConfig points the panel at a community store.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	TokenEnv string        `mapstructure:"token_env"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LogConfig holds the diagnostic log sink. The terminal belongs to the UI, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CommunityLimit int    `mapstructure:"community_limit"`
	APIKeysURL     string `mapstructure:"api_keys_url"`
}

// Load reads configuration from file and env. Env var overrides use prefix COMMUNITYDASH_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8002/account")
	v.SetDefault("api.token_env", "COMMUNITYDASH_TOKEN")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "communitydash", "panel.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.community_limit", 5)
	v.SetDefault("ui.api_keys_url", "http://localhost:3000/dashboard/api-keys")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COMMUNITYDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "communitydash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COMMUNITYDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.CommunityLimit <= 0 {
		return Config{}, fmt.Errorf("ui.community_limit must be positive, got %d", c.UI.CommunityLimit)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The token is written in plain text; prefer the env var or `communitydash login`.
func Save(cfg Config) error {
	path := os.Getenv("COMMUNITYDASH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "communitydash", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.token_env", cfg.API.TokenEnv)
	v.Set("api.token", cfg.API.Token)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.community_limit", cfg.UI.CommunityLimit)
	v.Set("ui.api_keys_url", cfg.UI.APIKeysURL)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
