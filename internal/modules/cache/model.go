// README: Cached prompt/response pair as listed by GET /cache.
package cache

import "time"

type Entry struct {
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
