// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the portal configuration loaded from environment variables.
type Config struct {
	Env           string `env:"PROTIDIN_ENV" envDefault:"development"`
	ServerHost    string `env:"PROTIDIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PROTIDIN_SERVER_PORT" envDefault:"8080"`
	SessionSecret string `env:"PROTIDIN_SESSION_SECRET,required"`
	SessionDBPath string `env:"PROTIDIN_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	DefaultLang   string `env:"PROTIDIN_DEFAULT_LANG" envDefault:"bn"`
	LogLevel      string `env:"PROTIDIN_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"PROTIDIN_LOG_FILE"` // Optional rotated log file
	SiteURL       string `env:"PROTIDIN_SITE_URL"` // Public base URL used in sitemap.xml

	// REST backend
	APIURL         string        `env:"PROTIDIN_API_URL" envDefault:"http://localhost:3000"`
	APITimeout     time.Duration `env:"PROTIDIN_API_TIMEOUT" envDefault:"10s"`
	BreakerEnabled bool          `env:"PROTIDIN_BREAKER_ENABLED" envDefault:"true"`

	// Request cache (disabled when CacheTTL is 0)
	CacheTTL          int    `env:"PROTIDIN_CACHE_TTL" envDefault:"0"`                   // Seconds
	RedisURL          string `env:"PROTIDIN_REDIS_URL"`                                  // Optional Redis URL for a shared cache
	CachePrefix       string `env:"PROTIDIN_CACHE_PREFIX" envDefault:"protidin:"`        // Redis key prefix
	CacheWarmSchedule string `env:"PROTIDIN_CACHE_WARM_SCHEDULE" envDefault:"@every 5m"` // Cron spec, empty disables

	MetricsEnabled bool `env:"PROTIDIN_METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// CacheEnabled reports whether backend responses should be cached.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// CacheDuration returns the cache TTL as a duration.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.CacheEnabled() && c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PROTIDIN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PROTIDIN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PROTIDIN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if err := validateBaseURL(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("PROTIDIN_API_URL: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	switch cfg.DefaultLang {
	case "bn", "en":
	default:
		return nil, fmt.Errorf("PROTIDIN_DEFAULT_LANG must be bn or en, got %q", cfg.DefaultLang)
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("PROTIDIN_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}

// validateBaseURL requires an absolute http(s) URL.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
