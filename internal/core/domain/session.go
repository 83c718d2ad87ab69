package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("domain: not found")

// ChatMessage is one analyzed user utterance inside a session.
type ChatMessage struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Text       string    `json:"text"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	// PreviewEnergy is the RMS energy of the suggested tracks' preview
	// clips, filled in asynchronously by the worker. Zero until analyzed.
	PreviewEnergy float64   `json:"previewEnergy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ChatSession groups the messages of one conversation. Messages are kept in
// insertion order; the most recent ones double as conversation context.
type ChatSession struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Messages  []ChatMessage `json:"messages"`
}
