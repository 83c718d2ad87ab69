// Package ollama adapts a local Ollama instance to the engine's ports: the
// embedding model backs the Embedder port and the chat model backs the
// ResponseGenerator port.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

const (
	defaultBaseURL    = "http://localhost:11434"
	defaultEmbedModel = "nomic-embed-text"
	defaultChatModel  = "llama3.1:8b"
)

const systemPrompt = "You are MoodTune, a warm and concise music chat companion. Follow the formatting instructions in the user prompt exactly and never add anything after your reply."

// Client talks to one Ollama instance for both embeddings and chat replies.
type Client struct {
	baseURL    string
	embedModel string
	chatModel  string
	httpClient *http.Client
}

var (
	_ ports.Embedder          = (*Client)(nil)
	_ ports.ResponseGenerator = (*Client)(nil)
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// NewClient constructs a client. Empty arguments fall back to the defaults.
func NewClient(baseURL, embedModel, chatModel string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if embedModel == "" {
		embedModel = defaultEmbedModel
	}
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	return &Client{
		baseURL:    baseURL,
		embedModel: embedModel,
		chatModel:  chatModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// EmbedText maps text to a fixed-length vector via the embeddings endpoint.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	payload := embedRequest{Model: c.embedModel, Prompt: text}

	var parsed embedResponse
	if err := c.post(ctx, "/api/embeddings", payload, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("ollama: %s", parsed.Error)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("ollama: empty embedding")
	}
	return parsed.Embedding, nil
}

// Generate asks the chat model for a reply to the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:  c.chatModel,
		Stream: false,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	var parsed chatResponse
	if err := c.post(ctx, "/api/chat", payload, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return "", fmt.Errorf("ollama: empty response")
	}
	return parsed.Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ollama: decode response: %w", err)
	}
	return nil
}
