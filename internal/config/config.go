package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        slog.Level
	RandomSource    string
	RandomSeed      uint64
	DefaultLength   int
	MaxLength       int
	RateLimitRPS    float64
	RateLimitBurst  int
	SessionTTL      time.Duration
	SessionCapacity int
	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		RandomSource:    getEnv("RANDOM_SOURCE", "crypto"),
		RandomSeed:      getEnvUint("RANDOM_SEED", 0),
		DefaultLength:   getEnvInt("DEFAULT_LENGTH", 8),
		MaxLength:       getEnvInt("MAX_LENGTH", 1024),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 40),
		SessionTTL:      getEnvDuration("SESSION_TTL", 30*time.Minute),
		SessionCapacity: getEnvInt("SESSION_CAPACITY", 10000),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DefaultLength < 1 {
		slog.Warn("DEFAULT_LENGTH must be at least 1, using 8", "value", cfg.DefaultLength)
		cfg.DefaultLength = 8
	}

	if cfg.Env == "production" && cfg.RandomSource != "crypto" {
		slog.Warn("non-cryptographic random source in production", "source", cfg.RandomSource)
	}

	return cfg
}

// NewLogger returns the process logger: JSON in production, text elsewhere.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.Env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getEnvUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		slog.Warn("invalid unsigned integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		slog.Warn("invalid log level, using default", "key", key, "value", v)
		return fallback
	}
	return lvl
}
