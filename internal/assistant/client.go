// Package assistant is a minimal client for an OpenAI-compatible
// chat-completions endpoint. The chat service hands it a system persona and
// the user's message; it returns the model's reply text.
//
// No SDK — the API is one JSON POST, and a plain http.Client keeps the
// dependency surface flat. Any provider speaking the /chat/completions
// dialect works by pointing BaseURL at it.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the reply-generation service.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// New creates a Client. An empty apiKey yields an unconfigured client —
// Configured() returns false and callers fall back to an offline reply.
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the client has credentials to call upstream.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// message mirrors the chat-completions wire format.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system persona and user message upstream and returns
// the reply text. Short answers are all the widget wants, so max_tokens
// stays small.
func (c *Client) Complete(ctx context.Context, system, userMessage string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.7,
		MaxTokens:   120,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant: calling completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log line, never for the client.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("assistant: upstream status %d: %s", resp.StatusCode, snippet)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("assistant: decoding response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("assistant: response contained no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
