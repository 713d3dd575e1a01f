package store

import "time"

// Interaction is one recorded request/response cycle of the chat pipeline.
// Append-only diagnostics; never read back by the pipeline itself.
type Interaction struct {
	ID         string    `json:"id"` // UUID
	Message    string    `json:"message"`
	Intent     string    `json:"intent"`
	Sentiment  string    `json:"sentiment"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	LatencyMS  int64     `json:"latency_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
