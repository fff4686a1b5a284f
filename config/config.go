package config

import (
	"log"
	"os"
	"strconv"

	"chartview/internal/model"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// HTTP surfaces
	ListenAddr  string
	MetricsAddr string

	// Data plumbing
	SQLitePath    string
	RedisAddr     string
	RedisPassword string

	// Chart defaults
	DefaultSymbol string
	EnabledTFs    string
	CanvasWidth   int
	CanvasHeight  int
	DPR           float64

	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),

		SQLitePath:    getEnv("SQLITE_PATH", "data/candles.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		DefaultSymbol: getEnv("DEFAULT_SYMBOL", "BTCUSD"),

		// Default TFs: 1m, 5m, 15m, 1h
		EnabledTFs: getEnv("ENABLED_TFS", "60,300,900,3600"),

		CanvasWidth:  getEnvInt("CANVAS_WIDTH", 960),
		CanvasHeight: getEnvInt("CANVAS_HEIGHT", 540),
		DPR:          getEnvFloat("DEVICE_PIXEL_RATIO", 1),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ParseTFs parses the EnabledTFs string into the enabled timeframe buckets.
func (c *Config) ParseTFs() []model.Timeframe {
	tfs := model.ParseTimeframes(c.EnabledTFs)
	if len(tfs) == 0 {
		log.Printf("[config] no valid TFs in %q, falling back to 1m", c.EnabledTFs)
		tfs = []model.Timeframe{model.TF1m}
	}
	return tfs
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
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
	if err != nil || f <= 0 {
		log.Printf("[config] invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}
