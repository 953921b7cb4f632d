package ai

import (
	"encoding/json"
	"time"
)

// ItineraryResult is the model reply shaped into the two fields callers use.
type ItineraryResult struct {
	// Destination is empty when the model did not name one.
	Destination string `json:"destination"`

	// Itinerary is kept verbatim; it is never nil and defaults to {}.
	Itinerary json.RawMessage `json:"itinerary"`
}

// PromptResult is the uniform outcome of GenerateItinerary. Exactly one of
// Blocked, Output or Err is set.
type PromptResult struct {
	Blocked bool
	Output  *ItineraryResult
	Err     string
}

func (r PromptResult) OK() bool {
	return !r.Blocked && r.Err == "" && r.Output != nil
}

// ModelInfo is what the backend reports about the configured model.
type ModelInfo struct {
	Name    string
	Details map[string]any
}

// RunningModel is one entry of the backend's running-process list.
type RunningModel struct {
	Name      string
	CreatedAt time.Time
}

// ModelStatus is the version-report payload for the model.
type ModelStatus struct {
	Model   string         `json:"model"`
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

const (
	StatusLoaded      = "loaded"
	StatusUnavailable = "unavailable"
)
