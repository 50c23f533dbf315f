// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// APIConfig holds the configuration of the reference REST backend.
type APIConfig struct {
	Env      string `env:"PROTIDIN_ENV" envDefault:"development"`
	Host     string `env:"PROTIDIN_API_HOST" envDefault:"localhost"`
	Port     int    `env:"PROTIDIN_API_PORT" envDefault:"3000"`
	DBDriver string `env:"PROTIDIN_API_DB_DRIVER" envDefault:"sqlite"` // sqlite or mysql
	DBDSN    string `env:"PROTIDIN_API_DB_DSN" envDefault:"./data/protidin.db"`

	CORSOrigins []string `env:"PROTIDIN_API_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`

	// Seeded on first start when the users table is empty.
	AdminUsername string `env:"PROTIDIN_API_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"PROTIDIN_API_ADMIN_PASSWORD"`

	LogLevel string `env:"PROTIDIN_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"PROTIDIN_LOG_FILE"`
}

// ServerAddr returns the full server address in host:port format.
func (c APIConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDevelopment returns true if the backend is running in development mode.
func (c APIConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadAPI parses environment variables for the backend binary.
func LoadAPI() (*APIConfig, error) {
	cfg := &APIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("PROTIDIN_API_DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("PROTIDIN_API_DB_DSN must not be empty")
	}

	return cfg, nil
}
