package app

import (
	"os"
	"strings"
	"time"

	"github.com/yungbote/shepherd-backend/internal/data/db"
	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/ai"
	"github.com/yungbote/shepherd-backend/internal/platform/envutil"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/mail"
	"github.com/yungbote/shepherd-backend/internal/realtime/bus"
)

type Config struct {
	Port string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB    db.Config
	Redis bus.Config

	SSEBufferSize int
	SSEHeartbeat  time.Duration

	MuxWebhookSecret string
	CORSOrigins      []string

	AI   ai.Config
	Mail mail.Config

	Otel           observability.OtelConfig
	MetricsEnabled bool

	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret", log)
	if jwtSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set; using insecure default")
	}
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600, log)

	driver := strings.ToLower(envutil.String("DB_DRIVER", "postgres", log))

	return Config{
		Port:           envutil.String("PORT", "8080", log),
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		DB: db.Config{
			Driver:           driver,
			DSN:              strings.TrimSpace(os.Getenv("DATABASE_URL")),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: strings.TrimSpace(os.Getenv("POSTGRES_PASSWORD")),
			PostgresName:     envutil.String("POSTGRES_NAME", "shepherd", log),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "shepherd.db", log),
		},
		Redis: bus.Config{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
			DB:       envutil.Int("REDIS_DB", 0, log),
			Channel:  envutil.String("REDIS_CHANNEL", bus.DefaultChannel, log),
		},
		SSEBufferSize:    envutil.Int("SSE_BUFFER_SIZE", 64, log),
		SSEHeartbeat:     envutil.Duration("SSE_HEARTBEAT_INTERVAL", 0, log),
		MuxWebhookSecret: strings.TrimSpace(os.Getenv("MUX_WEBHOOK_SECRET")),
		CORSOrigins:      envutil.CSV("CORS_ALLOWED_ORIGINS", nil),
		AI: ai.Config{
			Provider:      envutil.String("AI_PROVIDER", ai.ProviderOpenAI, log),
			OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			OpenAIModel:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
			GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			GeminiModel:   strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
			Timeout:       envutil.Duration("AI_TIMEOUT", 60*time.Second, log),
		},
		Mail: mail.Config{
			APIKey:           strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
			BaseURL:          strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL")),
			DefaultFromEmail: strings.TrimSpace(os.Getenv("SENDGRID_FROM_EMAIL")),
			DefaultFromName:  envutil.String("SENDGRID_FROM_NAME", "Shepherd", log),
			Timeout:          envutil.Duration("SENDGRID_TIMEOUT", 30*time.Second, log),
			MaxRetries:       envutil.Int("SENDGRID_MAX_RETRIES", 3, log),
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "shepherd", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "", log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: sampleRatio(log),
		},
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", true),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second, log),
	}
}

func sampleRatio(log *logger.Logger) float64 {
	pct := envutil.Int("OTEL_SAMPLE_PERCENT", 100, log)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return float64(pct) / 100
}
