package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"kmbeta/internal/kmb"
	"kmbeta/internal/storage"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port            int           `validate:"min=1,max=65535"`
	BaseURL         string        `validate:"required,url"`
	CacheBackend    string        `validate:"oneof=memory sqlite"`
	CacheDSN        string        `validate:"required_if=CacheBackend sqlite"`
	RefreshInterval time.Duration `validate:"gte=1s"`
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:            envInt("KMBETA_PORT", 8080),
		BaseURL:         envStr("KMBETA_BASE_URL", kmb.DefaultBaseURL),
		CacheBackend:    envStr("KMBETA_CACHE", "memory"),
		CacheDSN:        envStr("KMBETA_CACHE_DSN", storage.DefaultDSN),
		RefreshInterval: envDuration("KMBETA_REFRESH", 30*time.Second),
	}
}

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
