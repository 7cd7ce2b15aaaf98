package beeper

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

	"chat-triage/internal/triage"
)

const (
	// The Beeper Desktop app serves its local API here by default.
	defaultBaseURL = "http://localhost:23373"
	clientTimeout  = 30 * time.Second
)

// Error is the single chat-service error kind. Transport, auth, and schema
// faults all surface as *Error with the underlying cause attached.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("beeper: %s: HTTP %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("beeper: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client talks to the Beeper Desktop HTTP API.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: clientTimeout},
	}
}

type chatsResponse struct {
	Items []wireChat `json:"items"`
}

func (c *Client) ListChats(ctx context.Context) ([]triage.ChatSummary, error) {
	var resp chatsResponse
	if err := c.get(ctx, "/v0/chats", nil, &resp); err != nil {
		return nil, &Error{Op: "list chats", Err: err, Status: statusOf(err)}
	}
	chats := make([]triage.ChatSummary, 0, len(resp.Items))
	for _, w := range resp.Items {
		chats = append(chats, w.summary())
	}
	return chats, nil
}

type messagesResponse struct {
	Items  []wireMessage `json:"items"`
	Cursor string        `json:"cursor"`
}

// ListMessages walks message pages for a chat, newest page first, and
// applies the since/limit bounds while walking. When a page arrives in
// descending timestamp order, crossing the since bound means every later
// page is older still, so the walk stops early instead of fetching history
// it will discard.
func (c *Client) ListMessages(ctx context.Context, chatID string, q triage.MessageQuery) ([]triage.Message, error) {
	var out []triage.Message
	cursor := ""

	for {
		params := url.Values{"chatID": {chatID}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}
		var page messagesResponse
		if err := c.get(ctx, "/v0/messages", params, &page); err != nil {
			return nil, &Error{Op: "list messages", Err: err, Status: statusOf(err)}
		}
		if len(page.Items) == 0 {
			break
		}

		messages := make([]triage.Message, 0, len(page.Items))
		minTS := int64(0)
		for i, w := range page.Items {
			m := w.message()
			messages = append(messages, m)
			if i == 0 || m.TimestampMS < minTS {
				minTS = m.TimestampMS
			}
		}
		first := messages[0].TimestampMS
		last := messages[len(messages)-1].TimestampMS
		descending := len(messages) < 2 || first >= last

		stopped := false
		for _, m := range messages {
			if q.SinceMS > 0 && m.TimestampMS < q.SinceMS {
				if descending {
					stopped = true
					break
				}
				continue
			}
			out = append(out, m)
			if q.Limit > 0 && len(out) >= q.Limit {
				break
			}
		}

		if stopped || (q.Limit > 0 && len(out) >= q.Limit) {
			break
		}
		if q.SinceMS > 0 && descending && minTS < q.SinceMS {
			break
		}
		cursor = page.Cursor
		if cursor == "" {
			break
		}
	}
	return out, nil
}

type sendRequest struct {
	ChatID           string `json:"chatID"`
	Text             string `json:"text"`
	ReplyToMessageID string `json:"replyToMessageID,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, chatID, text, replyToID string) error {
	body := sendRequest{ChatID: chatID, Text: text, ReplyToMessageID: replyToID}
	if err := c.post(ctx, "/v0/send-message", body, nil); err != nil {
		return &Error{Op: "send message", Err: err, Status: statusOf(err)}
	}
	return nil
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return e.body
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	return 0
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{status: resp.StatusCode, body: string(bytes.TrimSpace(body))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
