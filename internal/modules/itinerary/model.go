// README: Itinerary record and the payload returned by the creation flow.
package itinerary

import (
	"bytes"
	"encoding/json"
	"time"
)

type Itinerary struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Title     string          `json:"title"`
	Location  string          `json:"location"`
	Days      int             `json:"days"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// Created is the response of a successful Create.
type Created struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Destination string          `json:"destination"`
	Result      json.RawMessage `json:"result"`
}

var emptyData = json.RawMessage(`{}`)

// normalizeData keeps stored content a JSON value; nil, blank, null and
// malformed input become {}.
func normalizeData(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return emptyData
	}
	return trimmed
}
