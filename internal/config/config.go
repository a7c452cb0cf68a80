// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config holds all server settings. Every field has an environment
// variable; defaults suit local development except JWT_SECRET, which is
// required.
type Config struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string `env:"ADDR" envDefault:":8080"`

	// Store selects the persistence backend: sqlite or mongo.
	Store string `env:"STORE" envDefault:"sqlite"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/messmate.db"`

	// MongoURI and MongoDatabase configure the mongo backend.
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"messmate"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env if present, then parses the environment. It fails when a
// required value is missing or the store selector is unknown.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	switch cfg.Store {
	case StoreSQLite, StoreMongo:
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", cfg.Store, StoreSQLite, StoreMongo)
	}
	return cfg, nil
}
