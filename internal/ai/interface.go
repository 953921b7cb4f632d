package ai

import (
	"context"
	"time"
)

// Backend is the model service the gateway talks to. Ollama is the default;
// Gemini can be swapped in through configuration.
type Backend interface {
	// Generate sends one system+user prompt pair and returns the raw reply text.
	Generate(ctx context.Context, system, prompt string) (string, error)

	// Show returns metadata about the configured model (version reporting).
	Show(ctx context.Context) (*ModelInfo, error)

	// Tags succeeds when the service answers its model listing (liveness).
	Tags(ctx context.Context) error

	// Running reports the configured model's running process, if any (uptime).
	Running(ctx context.Context) (*RunningModel, error)
}

// Recorder receives one observation per itinerary prompt.
type Recorder interface {
	RecordLLM(outcome string, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordLLM(string, time.Duration) {}
