// README: LLM gateway; safety filter, one generation call, reply shaping and the meta probes.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eztravel/internal/metrics"
)

// Gateway wraps a Backend with the prompt policy used by the itinerary flow.
type Gateway struct {
	backend Backend
	model   string
	metrics Recorder
	log     *slog.Logger
}

// NewGateway builds a gateway. rec and logger may be nil.
func NewGateway(backend Backend, model string, rec Recorder, logger *slog.Logger) *Gateway {
	if rec == nil {
		rec = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{backend: backend, model: model, metrics: rec, log: logger}
}

// GenerateItinerary filters the prompt, makes a single model call and shapes
// the reply. Failures are reported in the result, never as a Go error.
func (g *Gateway) GenerateItinerary(ctx context.Context, prompt string) PromptResult {
	if !IsSafeInput(prompt) {
		g.log.Warn("prompt blocked by safety filter")
		g.metrics.RecordLLM(metrics.OutcomeBlocked, 0)
		return PromptResult{Blocked: true}
	}

	start := time.Now()
	text, err := g.backend.Generate(ctx, SystemPrompt, prompt)
	elapsed := time.Since(start)
	if err != nil {
		g.log.Error("llm generate failed", "model", g.model, "error", err, "elapsed", elapsed)
		g.metrics.RecordLLM(metrics.OutcomeError, elapsed)
		return PromptResult{Err: fmt.Sprintf("Failed to retrieve LLM response: %v", err)}
	}

	g.metrics.RecordLLM(metrics.OutcomeOK, elapsed)
	g.log.Debug("llm generate ok", "model", g.model, "elapsed", elapsed)
	return PromptResult{Output: parseItineraryReply(text)}
}

// Info reports the configured model for the version endpoint.
func (g *Gateway) Info(ctx context.Context) ModelStatus {
	info, err := g.backend.Show(ctx)
	if err != nil {
		g.log.Error("llm info probe failed", "model", g.model, "error", err)
		return ModelStatus{Model: g.model, Status: StatusUnavailable, Error: err.Error()}
	}
	return ModelStatus{Model: info.Name, Status: StatusLoaded, Details: info.Details}
}

func (g *Gateway) Liveness(ctx context.Context) error {
	return g.backend.Tags(ctx)
}

// Uptime returns how long the configured model has been running as of now.
func (g *Gateway) Uptime(ctx context.Context, now time.Time) (time.Duration, error) {
	rm, err := g.backend.Running(ctx)
	if err != nil {
		return 0, err
	}
	d := now.Sub(rm.CreatedAt)
	if d < 0 {
		d = 0
	}
	return d, nil
}

func FormatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
