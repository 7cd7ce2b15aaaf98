package beeper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"chat-triage/internal/triage"
)

// The desktop API has shipped several field spellings over time. Each wire
// struct declares every known spelling and resolves them with firstString /
// firstBool in preference order, so schema drift stays contained here.

// millis accepts either an epoch-milliseconds number or an RFC3339 string
// and normalizes to int64 milliseconds. Downstream code only ever sees the
// integer form.
type millis int64

func (m *millis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		*m = millis(t.UnixMilli())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = millis(int64(math.Round(f)))
	return nil
}

type wirePreview struct {
	Text     string `json:"text"`
	Body     string `json:"body"`
	IsSender bool   `json:"isSender"`
}

type wireChat struct {
	ChatID      string       `json:"chatID"`
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Name        string       `json:"name"`
	UnreadCount int          `json:"unreadCount"`
	IsMuted     *bool        `json:"isMuted"`
	Muted       *bool        `json:"muted"`
	Preview     *wirePreview `json:"preview"`
	Timestamp   millis       `json:"timestamp"`
}

func (w wireChat) summary() triage.ChatSummary {
	s := triage.ChatSummary{
		ID:             firstString(w.ChatID, w.ID),
		Title:          firstString(w.Title, w.Name, "(no title)"),
		UnreadCount:    w.UnreadCount,
		LastActivityMS: int64(w.Timestamp),
		Muted:          firstBool(w.IsMuted, w.Muted),
	}
	if w.Preview != nil {
		s.Preview = triage.ChatPreview{
			Text:     firstString(w.Preview.Text, w.Preview.Body),
			IsSender: w.Preview.IsSender,
		}
	}
	return s
}

type wireMessage struct {
	MessageID   string `json:"messageID"`
	ID          string `json:"id"`
	SenderName  string `json:"senderName"`
	Sender      string `json:"sender"`
	Author      string `json:"author"`
	IsSender    bool   `json:"isSender"`
	Text        string `json:"text"`
	Body        string `json:"body"`
	TimestampMS millis `json:"timestampMS"`
	Timestamp   millis `json:"timestamp"`
}

func (w wireMessage) message() triage.Message {
	ts := int64(w.TimestampMS)
	if ts == 0 {
		ts = int64(w.Timestamp)
	}
	return triage.Message{
		ID:          firstString(w.MessageID, w.ID),
		SenderName:  firstString(w.SenderName, w.Sender, w.Author, "Unknown"),
		IsSender:    w.IsSender,
		Text:        firstString(w.Text, w.Body),
		TimestampMS: ts,
	}
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstBool(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}
