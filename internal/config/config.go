package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/utility"
)

// Config holds all application configuration.
type Config struct {
	// Bridge server settings
	Host              string
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// Redis settings, rate limiting is disabled when RedisURL is empty
	RedisURL      string
	RedisPoolSize int
	RedisMinIdle  int
	RateLimitPost int

	// Shutdown settings
	ShutdownTimeout time.Duration

	LogLevel string

	// One-time secret service settings
	Region      domain.Region
	TTL         domain.TTL
	HTTPTimeout time.Duration // 0 leaves the transport default in place
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:              "127.0.0.1",
		Port:              "8787",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB

		RedisPoolSize: 10,
		RedisMinIdle:  2,
		RateLimitPost: 30,

		ShutdownTimeout: 5 * time.Second,

		LogLevel: "info",

		Region: domain.RegionEU,
		TTL:    domain.TTLSevenDays,
	}
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := DefaultConfig()

	// Server settings
	cfg.Host = utility.Getenv("LISTEN_HOST", cfg.Host)

	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return Config{}, fmt.Errorf("PORT must be a valid number: %w", err)
		}
		cfg.Port = port
	}

	// Redis settings
	cfg.RedisURL = utility.Getenv("REDIS_URL", cfg.RedisURL)

	if poolSize := os.Getenv("REDIS_POOL_SIZE"); poolSize != "" {
		size, err := strconv.Atoi(poolSize)
		if err != nil || size < 1 {
			return Config{}, errors.New("REDIS_POOL_SIZE must be a positive integer")
		}
		cfg.RedisPoolSize = size
	}

	if minIdle := os.Getenv("REDIS_MIN_IDLE"); minIdle != "" {
		idle, err := strconv.Atoi(minIdle)
		if err != nil || idle < 0 {
			return Config{}, errors.New("REDIS_MIN_IDLE must be a non-negative integer")
		}
		cfg.RedisMinIdle = idle
	}

	if limit := os.Getenv("RATE_LIMIT_POST"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return Config{}, errors.New("RATE_LIMIT_POST must be a positive integer")
		}
		cfg.RateLimitPost = n
	}

	// Shutdown settings
	if timeout := os.Getenv("SHUTDOWN_TIMEOUT"); timeout != "" {
		dur, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf(
				"SHUTDOWN_TIMEOUT must be a valid duration: %w", err)
		}
		cfg.ShutdownTimeout = dur
	}

	cfg.LogLevel = utility.Getenv("LOG_LEVEL", cfg.LogLevel)

	// Service settings
	if region := os.Getenv("OTS_REGION"); region != "" {
		r, err := domain.ParseRegion(region)
		if err != nil {
			return Config{}, fmt.Errorf("OTS_REGION: %w", err)
		}
		cfg.Region = r
	}

	if ttl := os.Getenv("OTS_TTL"); ttl != "" {
		t, err := domain.ParseTTL(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("OTS_TTL: %w", err)
		}
		cfg.TTL = t
	}

	if timeout := os.Getenv("OTS_HTTP_TIMEOUT"); timeout != "" {
		dur, err := time.ParseDuration(timeout)
		if err != nil || dur < 0 {
			return Config{}, errors.New(
				"OTS_HTTP_TIMEOUT must be a non-negative duration")
		}
		cfg.HTTPTimeout = dur
	}

	return cfg, nil
}

// ListenAddr returns the address string for the bridge server.
func (c Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}
