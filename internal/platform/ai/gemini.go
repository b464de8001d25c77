package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiClient struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, log *logger.Logger, cfg Config) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.GeminiAPIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	model := strings.TrimSpace(cfg.GeminiModel)
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{
		log:    log.With("client", "GeminiGenerator"),
		client: client,
		model:  model,
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, p Prompt) (Completion, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ApplySystem(p.System), genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(p.User), config)
	if err != nil {
		c.log.Warn("Gemini request failed", "model", c.model, "error", err)
		return Completion{}, fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Completion{}, fmt.Errorf("gemini returned no text")
	}
	return Completion{Text: text, Model: c.model}, nil
}
