package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrModelNotRunning is returned by Running when the configured model is not
// in the running-process list or reports no start time.
var ErrModelNotRunning = errors.New("model not running")

// OllamaBackend talks to a local Ollama-compatible model service.
type OllamaBackend struct {
	baseURL         string
	model           string
	client          *http.Client
	probeTimeout    time.Duration
	generateTimeout time.Duration
}

// NewOllamaBackend builds a backend for baseURL. Timeouts are applied per call
// through the request context, so probes and generation are bounded independently.
func NewOllamaBackend(baseURL, model string, probeTimeout, generateTimeout time.Duration) *OllamaBackend {
	return &OllamaBackend{
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		client:          &http.Client{},
		probeTimeout:    probeTimeout,
		generateTimeout: generateTimeout,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type showResponse struct {
	Name    string         `json:"name"`
	Details map[string]any `json:"details"`
}

type psResponse struct {
	Models []struct {
		Name      string     `json:"name"`
		Model     string     `json:"model"`
		CreatedAt *time.Time `json:"created_at"`
	} `json:"models"`
}

func (b *OllamaBackend) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.generateTimeout)
	defer cancel()

	var out generateResponse
	err := b.do(ctx, http.MethodPost, "/api/generate", generateRequest{
		Model:  b.model,
		System: system,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Response, nil
}

func (b *OllamaBackend) Show(ctx context.Context) (*ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	var out showResponse
	if err := b.do(ctx, http.MethodPost, "/api/show", map[string]string{"model": b.model}, &out); err != nil {
		return nil, err
	}
	name := out.Name
	if name == "" {
		name = b.model
	}
	details := out.Details
	if details == nil {
		details = map[string]any{}
	}
	return &ModelInfo{Name: name, Details: details}, nil
}

func (b *OllamaBackend) Tags(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()
	return b.do(ctx, http.MethodGet, "/api/tags", nil, nil)
}

func (b *OllamaBackend) Running(ctx context.Context) (*RunningModel, error) {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	var out psResponse
	if err := b.do(ctx, http.MethodGet, "/api/ps", nil, &out); err != nil {
		return nil, err
	}
	for _, m := range out.Models {
		if !strings.Contains(m.Name, b.model) {
			continue
		}
		if m.CreatedAt == nil || m.CreatedAt.IsZero() {
			return nil, ErrModelNotRunning
		}
		return &RunningModel{Name: m.Name, CreatedAt: *m.CreatedAt}, nil
	}
	return nil, ErrModelNotRunning
}

// do performs one request; out may be nil when only the status matters.
func (b *OllamaBackend) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ollama: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ollama: %s %s: status %d: %s", method, path, resp.StatusCode, excerpt(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ollama: unmarshal response: %w", err)
	}
	return nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
