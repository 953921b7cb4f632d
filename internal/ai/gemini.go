package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// ErrUptimeUnsupported is returned by GeminiBackend.Running; the hosted API
// has no notion of a loaded model process.
var ErrUptimeUnsupported = errors.New("uptime not reported by gemini backend")

// GeminiBackend implements Backend using Google's Gemini models.
type GeminiBackend struct {
	client          *genai.Client
	modelName       string
	probeTimeout    time.Duration
	generateTimeout time.Duration
}

// NewGeminiBackend initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiBackend(ctx context.Context, apiKey, modelName string, probeTimeout, generateTimeout time.Duration) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiBackend{
		client:          client,
		modelName:       modelName,
		probeTimeout:    probeTimeout,
		generateTimeout: generateTimeout,
	}, nil
}

// Close cleans up the Gemini client resources.
func (b *GeminiBackend) Close() {
	b.client.Close()
}

func (b *GeminiBackend) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.generateTimeout)
	defer cancel()

	model := b.client.GenerativeModel(b.modelName)
	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String(), nil
}

func (b *GeminiBackend) Show(ctx context.Context) (*ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	info, err := b.client.GenerativeModel(b.modelName).Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("gemini model info: %w", err)
	}
	return &ModelInfo{
		Name: info.Name,
		Details: map[string]any{
			"display_name":       info.DisplayName,
			"version":            info.Version,
			"input_token_limit":  info.InputTokenLimit,
			"output_token_limit": info.OutputTokenLimit,
		},
	}, nil
}

func (b *GeminiBackend) Tags(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	_, err := b.client.ListModels(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("gemini list models: %w", err)
	}
	return nil
}

func (b *GeminiBackend) Running(context.Context) (*RunningModel, error) {
	return nil, ErrUptimeUnsupported
}
