package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/breakeven/internal/logging"
)

const (
	defaultEnv      = "dev"
	defaultDBPath   = "./catalog.db"
	defaultPort     = "8080"
	defaultCacheTTL = 10 * time.Minute
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	DBPath        string
	RedisAddr     string
	CacheTTL      time.Duration
	SessionSecret string
	ScenarioFile  string
	ChartWidth    float64
	// TrustProxy takes client addresses from X-Forwarded-For/X-Real-IP. Only enable it
	// behind a proxy that overwrites those headers.
	TrustProxy bool
	Logging    logging.Config
}

// IsDev reports whether the service runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables instead.
	loaded, err := loadDotEnv(".env")
	if err != nil {
		logging.Warn("failed to read .env", zap.Error(err))
	}

	cfg := Config{
		Env:           strings.ToLower(os.Getenv("APP_ENV")),
		Port:          os.Getenv("PORT"),
		DBPath:        os.Getenv("DB_PATH"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		ScenarioFile:  os.Getenv("SCENARIO_FILE"),
		CacheTTL:      defaultCacheTTL,
		Logging:       logging.DefaultConfig(),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl < 0 {
			logging.Warn("ignoring invalid CACHE_TTL", zap.String("value", raw))
		} else {
			cfg.CacheTTL = ttl
		}
	}
	if raw := os.Getenv("CHART_WIDTH"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || width <= 0 {
			logging.Warn("ignoring invalid CHART_WIDTH", zap.String("value", raw))
		} else {
			cfg.ChartWidth = width
		}
	}

	if raw := os.Getenv("TRUST_PROXY"); raw != "" {
		trust, err := strconv.ParseBool(raw)
		if err != nil {
			logging.Warn("ignoring invalid TRUST_PROXY", zap.String("value", raw))
		} else {
			cfg.TrustProxy = trust
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	cfg.Logging.Development = cfg.IsDev()

	if cfg.SessionSecret == "" {
		logging.Warn("SESSION_SECRET is not set; quiz deals use a development key")
	}
	if loaded > 0 {
		logging.Debug("loaded .env", zap.Int("keys", loaded))
	}

	return cfg
}
