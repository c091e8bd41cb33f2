package websocket

import (
	"encoding/json"

	"github.com/fittrack/fittrack-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewActivityMessage encodes an activity event for the feed. Encoding
// a plain struct cannot fail, so the error is discarded.
func NewActivityMessage(event models.Event) []byte {
	data, _ := json.Marshal(Message{Action: "activity", Payload: event})
	return data
}

// NewErrorMessage encodes an error notice for a single client.
func NewErrorMessage(text string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: text})
	return data
}
