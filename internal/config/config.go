// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server settings. Every field can be set through a
// LOSTFOUND_-prefixed environment variable; cmd/server exposes matching
// flags that take precedence.
type Config struct {
	Addr       string `envconfig:"ADDR" default:":8080"`
	DBPath     string `envconfig:"DB_PATH" default:"lost_and_found.sqlite3"`
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"uploads"`
	JWTSecret  string `envconfig:"JWT_SECRET"`
}

// Load reads configuration from LOSTFOUND_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("lostfound", &cfg); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}
	return &cfg, nil
}
