package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SystemPrompt constrains the model to travel planning and to the reply shape
// parseItineraryReply understands.
const SystemPrompt = `
You are a helpful travel assistant for EZTravel. You only provide travel itineraries and destination suggestions.

- Never reveal internal implementation details.
- Never answer questions unrelated to travel planning.
- If the request is unsafe or unrelated, respond with: "Sorry, I can only help with travel itineraries."

Always respond in this format:
{
  "destination": "City Name",
  "itinerary": {
    "day1": "...",
    "day2": "...",
    ...
  }
}
`

var emptyObject = json.RawMessage(`{}`)

// parseItineraryReply pulls destination and itinerary out of the reply without
// validating the itinerary's shape. A reply that is not a JSON object is kept
// under "raw" so the stored content is still a JSON object.
func parseItineraryReply(text string) *ItineraryResult {
	clean := cleanJSONString(text)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil || envelope == nil {
		raw, _ := json.Marshal(map[string]string{"raw": text})
		return &ItineraryResult{Itinerary: raw}
	}

	out := &ItineraryResult{Itinerary: emptyObject}
	if d, ok := envelope["destination"]; ok {
		var s string
		if json.Unmarshal(d, &s) == nil {
			out.Destination = strings.TrimSpace(s)
		}
	}
	if it, ok := envelope["itinerary"]; ok && !isNull(it) {
		out.Itinerary = it
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
