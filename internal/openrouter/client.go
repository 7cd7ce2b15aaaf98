package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chat-triage/internal/triage"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	clientTimeout  = 60 * time.Second
)

// Error is the single LLM-service error kind.
type Error struct {
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("openrouter: API error %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("openrouter: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client requests chat completions from OpenRouter.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: clientTimeout},
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the role-tagged prompt and returns the model's reply text,
// trimmed.
func (c *Client) Complete(ctx context.Context, model string, messages []triage.PromptMessage) (string, error) {
	wire := make([]wireMessage, len(messages))
	for i, m := range messages {
		wire[i] = wireMessage{Role: m.Role, Content: m.Content}
	}
	payload, err := json.Marshal(completionRequest{Model: model, Messages: wire})
	if err != nil {
		return "", &Error{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &Error{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(data.Choices) == 0 {
		return "", &Error{Err: fmt.Errorf("response missing content")}
	}
	return strings.TrimSpace(data.Choices[0].Message.Content), nil
}
