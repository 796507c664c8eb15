package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "PORT", "DB_PATH", "REDIS_ADDR", "CACHE_TTL", "CHART_WIDTH", "LOG_LEVEL", "LOG_FORMAT", "SESSION_SECRET", "SCENARIO_FILE", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if !cfg.IsDev() || cfg.Port != "8080" || cfg.DBPath != "./catalog.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("CacheTTL=%v", cfg.CacheTTL)
	}
	if cfg.ChartWidth != 0 {
		t.Fatalf("ChartWidth=%v, want 0 (renderer default)", cfg.ChartWidth)
	}
	if !cfg.Logging.Development {
		t.Fatalf("dev env should enable development logging")
	}
	if cfg.TrustProxy {
		t.Fatalf("proxy headers must not be trusted by default")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CHART_WIDTH", "640")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()

	if !cfg.TrustProxy {
		t.Fatalf("TRUST_PROXY=true should be honoured")
	}

	if cfg.IsDev() {
		t.Fatalf("prod env should not be dev")
	}
	if cfg.Port != "9090" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Second || cfg.ChartWidth != 640 {
		t.Fatalf("unexpected ttl/width: %v %v", cfg.CacheTTL, cfg.ChartWidth)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.Development {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_IgnoresInvalidNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("CHART_WIDTH", "-5")

	cfg := Load()

	if cfg.CacheTTL != 10*time.Minute || cfg.ChartWidth != 0 {
		t.Fatalf("invalid values should fall back: %v %v", cfg.CacheTTL, cfg.ChartWidth)
	}
}
