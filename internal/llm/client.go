// Package llm implements the client for the OpenAI-compatible chat
// completions endpoint of the vision model provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrTimeout is returned when the completion request exceeds the client's
// timeout. The request is never retried.
var ErrTimeout = errors.New("completion request timed out")

// StatusError is returned when the completion endpoint answers with a
// non-200 status. Body carries the provider's response for logging; callers
// must not echo it to clients.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion endpoint returned status %d", e.Code)
}

// Params holds generation parameters for completion requests.
type Params struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client is a client for an OpenAI-compatible chat completions API.
type Client struct {
	URL    string
	APIKey string
	Model  string
	Params Params
	client *http.Client
}

// NewClient creates a new completions client. url is the full completions
// endpoint URL, not a base URL.
func NewClient(url, apiKey, model string, params Params) *Client {
	return &Client{
		URL:    url,
		APIKey: apiKey,
		Model:  model,
		Params: params,
		client: &http.Client{Timeout: params.Timeout},
	}
}

// completionRequest represents the request payload for chat completions.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// completionChoice represents a single choice in the completion response.
type completionChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// completionResponse represents the response from the chat completions API.
type completionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Choices []completionChoice `json:"choices"`
}

// Complete sends the assembled message list to the completions endpoint and
// returns the generated text. Exactly one attempt is made.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	payload := completionRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: c.Params.Temperature,
		MaxTokens:   c.Params.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

// isTimeout reports whether err is a client-side timeout rather than some
// other transport failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
