package ai

import (
	"context"
	"fmt"

	"eztravel/internal/config"
)

// NewBackend builds the backend selected by cfg.Provider. The returned close
// func is never nil.
func NewBackend(ctx context.Context, cfg config.LLMConfig) (Backend, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		b, err := NewGeminiBackend(ctx, cfg.GeminiKey, cfg.Model, cfg.ProbeTimeout, cfg.GenerateTimeout)
		if err != nil {
			return nil, func() {}, err
		}
		return b, b.Close, nil
	case config.ProviderOllama, "":
		return NewOllamaBackend(cfg.URL, cfg.Model, cfg.ProbeTimeout, cfg.GenerateTimeout), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
