// Package mqtt publishes decoded words with an abstraction for
// testing and broker-less runs.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/ColonelBlimp/morserx/internal/morse"
)

// DefaultTopic is the MQTT topic decoded words are published to.
const DefaultTopic = "morserx/words"

// Publisher delivers decoded words to the output sink.
type Publisher interface {
	// Publish sends one completed word. A failure must not stop
	// decoding.
	Publish(word morse.Word) error

	// Close disconnects from the sink.
	Close() error
}

// Payload is the JSON message published per word.
type Payload struct {
	Timestamp string `json:"timestamp"`
	Word      string `json:"word"`
	Truncated bool   `json:"truncated,omitempty"`
}

// FormatPayload creates the JSON payload for a decoded word.
func FormatPayload(word morse.Word, now time.Time) ([]byte, error) {
	return json.Marshal(Payload{
		Timestamp: now.UTC().Format(time.RFC3339),
		Word:      word.Text,
		Truncated: word.Truncated,
	})
}
