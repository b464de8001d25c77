// Package ai drafts church content (sermons, emails, worship sets) through a
// text-generation provider. Providers are selected by configuration and share
// the Generator interface; callers never see provider-specific types.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

// ErrNotConfigured is returned by the generator used when no provider
// credentials are set.
var ErrNotConfigured = errors.New("ai generator not configured")

type Prompt struct {
	System string
	User   string
}

type Completion struct {
	Text  string
	Model string
}

type Generator interface {
	Generate(ctx context.Context, p Prompt) (Completion, error)
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	Timeout time.Duration
}

// New returns the generator for cfg.Provider. A provider without an API key
// yields a generator that always fails with ErrNotConfigured.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	switch provider {
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Warn("OPENAI_API_KEY not set; content generation disabled")
			return notConfigured{}, nil
		}
		return NewOpenAI(log, cfg), nil
	case ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			log.Warn("GEMINI_API_KEY not set; content generation disabled")
			return notConfigured{}, nil
		}
		return NewGemini(ctx, log, cfg)
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.Provider)
	}
}

type notConfigured struct{}

func (notConfigured) Generate(context.Context, Prompt) (Completion, error) {
	return Completion{}, ErrNotConfigured
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, p Prompt) (Completion, error)

func (f GeneratorFunc) Generate(ctx context.Context, p Prompt) (Completion, error) {
	return f(ctx, p)
}
