package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig holds community store settings. It is read from the environment only.
type ServerConfig struct {
	Addr           string        `env:"COMMUNITYD_ADDR" envDefault:":8002"`
	DatabasePath   string        `env:"COMMUNITYD_DATABASE_PATH" envDefault:"communityd.db"`
	MigrationsPath string        `env:"COMMUNITYD_MIGRATIONS_PATH" envDefault:"internal/database/migrations"`
	JWTSecret      string        `env:"COMMUNITYD_JWT_SECRET"`
	JWTIssuer      string        `env:"COMMUNITYD_JWT_ISSUER" envDefault:"communityd"`
	TokenTTL       time.Duration `env:"COMMUNITYD_TOKEN_TTL" envDefault:"720h"`
	CommunityLimit int           `env:"COMMUNITYD_COMMUNITY_LIMIT" envDefault:"5"`
	LogLevel       string        `env:"COMMUNITYD_LOG_LEVEL" envDefault:"info"`
	SeedDemo       bool          `env:"COMMUNITYD_SEED_DEMO" envDefault:"false"`
	ShutdownGrace  time.Duration `env:"COMMUNITYD_SHUTDOWN_GRACE" envDefault:"10s"`
}

// LoadServer loads an optional .env file and then parses the environment.
func LoadServer(dotenvPaths ...string) (ServerConfig, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("load .env: %w", err)
	}
	var c ServerConfig
	if err := env.Parse(&c); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	if c.JWTSecret == "" {
		return ServerConfig{}, errors.New("COMMUNITYD_JWT_SECRET is required")
	}
	if c.CommunityLimit <= 0 {
		return ServerConfig{}, fmt.Errorf("COMMUNITYD_COMMUNITY_LIMIT must be positive, got %d", c.CommunityLimit)
	}
	return c, nil
}

