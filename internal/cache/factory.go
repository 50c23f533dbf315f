// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set; otherwise memory is used.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int
}

// New creates a Redis cache when RedisURL is set and a memory cache otherwise.
// The returned string names the backend for logging.
func New(cfg Config) (Cache, string, error) {
	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}
		c, err := NewRedisCache(opts)
		if err != nil {
			return nil, "", fmt.Errorf("connecting to redis: %w", err)
		}
		return c, "redis", nil
	}

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = 10000
	}
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         maxSize,
		CleanupInterval: time.Minute,
	}), "memory", nil
}
