package ai

import (
	"context"
	"time"

	"github.com/yungbote/shepherd-backend/internal/observability"
)

type instrumentedGenerator struct {
	model   string
	inner   Generator
	metrics *observability.Metrics
}

// Instrument records attempts and latency for every Generate call. model
// labels failures, which carry no Completion.Model.
func Instrument(inner Generator, model string, metrics *observability.Metrics) Generator {
	if inner == nil || metrics == nil {
		return inner
	}
	return &instrumentedGenerator{model: model, inner: inner, metrics: metrics}
}

func (g *instrumentedGenerator) Generate(ctx context.Context, p Prompt) (Completion, error) {
	start := time.Now()
	out, err := g.inner.Generate(ctx, p)
	model := out.Model
	if model == "" {
		model = g.model
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	g.metrics.ObserveGeneration(model, status, time.Since(start))
	return out, err
}
