package app

import (
	"testing"
	"time"

	"github.com/yungbote/shepherd-backend/internal/platform/ai"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime/bus"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "REDIS_ADDR", "REDIS_CHANNEL", "SSE_BUFFER_SIZE", "SSE_HEARTBEAT_INTERVAL", "AI_PROVIDER", "METRICS_ENABLED", "OTEL_ENABLED", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())

	if cfg.Port != "8080" || cfg.DB.Driver != "postgres" {
		t.Fatalf("unexpected defaults: port=%q driver=%q", cfg.Port, cfg.DB.Driver)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.Channel != bus.DefaultChannel {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.SSEBufferSize != 64 || cfg.SSEHeartbeat != 0 {
		t.Fatalf("unexpected sse defaults: %d %s", cfg.SSEBufferSize, cfg.SSEHeartbeat)
	}
	if cfg.AI.Provider != ai.ProviderOpenAI || !cfg.MetricsEnabled || cfg.Otel.Enabled {
		t.Fatalf("unexpected feature defaults: %+v", cfg)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SSE_BUFFER_SIZE", "16")
	t.Setenv("SSE_HEARTBEAT_INTERVAL", "15s")
	t.Setenv("ACCESS_TOKEN_TTL", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.grace.example, https://admin.grace.example")
	t.Setenv("OTEL_SAMPLE_PERCENT", "250")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg := LoadConfig(logger.Nop())

	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != ":memory:" {
		t.Fatalf("db: %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("redis: %+v", cfg.Redis)
	}
	if cfg.SSEBufferSize != 16 || cfg.SSEHeartbeat != 15*time.Second {
		t.Fatalf("sse: %d %s", cfg.SSEBufferSize, cfg.SSEHeartbeat)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("ttl: %s", cfg.AccessTokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.grace.example" {
		t.Fatalf("cors: %v", cfg.CORSOrigins)
	}
	if cfg.Otel.SampleRatio != 1 {
		t.Fatalf("sample ratio not clamped: %v", cfg.Otel.SampleRatio)
	}
	if got := generatorModel(cfg.AI); got != "gemini-test" {
		t.Fatalf("generator model label: %q", got)
	}
}
