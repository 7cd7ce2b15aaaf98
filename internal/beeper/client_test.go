package beeper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-triage/internal/triage"
)

func TestListChatsNormalizesFieldVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/chats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [
			{"chatID": "c1", "title": "Alice", "unreadCount": 2, "isMuted": false,
			 "preview": {"text": "hey", "isSender": false},
			 "timestamp": "2024-01-30T14:32:00Z"},
			{"id": "c2", "name": "Work", "unreadCount": 1, "muted": true,
			 "preview": {"body": "done", "isSender": true},
			 "timestamp": 1706623920000}
		]}`))
	}))
	defer srv.Close()

	chats, err := NewClient("tok", srv.URL).ListChats(context.Background())
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(chats))
	}

	if chats[0].ID != "c1" || chats[0].Title != "Alice" || chats[0].Muted {
		t.Fatalf("unexpected first chat: %+v", chats[0])
	}
	if chats[0].LastActivityMS != 1706623920000 {
		t.Fatalf("RFC3339 timestamp not normalized: %d", chats[0].LastActivityMS)
	}
	if chats[0].Preview.Text != "hey" || chats[0].Preview.IsSender {
		t.Fatalf("unexpected preview: %+v", chats[0].Preview)
	}

	if chats[1].ID != "c2" || chats[1].Title != "Work" || !chats[1].Muted {
		t.Fatalf("fallback fields not applied: %+v", chats[1])
	}
	if chats[1].Preview.Text != "done" || !chats[1].Preview.IsSender {
		t.Fatalf("preview body fallback not applied: %+v", chats[1].Preview)
	}
}

func TestListChatsUntitledFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": "c1", "unreadCount": 1}]}`))
	}))
	defer srv.Close()

	chats, err := NewClient("tok", srv.URL).ListChats(context.Background())
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if chats[0].Title != "(no title)" {
		t.Fatalf("expected placeholder title, got %q", chats[0].Title)
	}
}

func TestListMessagesStopsAtSinceOnDescendingPages(t *testing.T) {
	// Page 1 is newest-first; page 2 would be older still and must not be
	// requested once the since bound is crossed.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"items": [
			{"id": "m3", "senderName": "Alice", "text": "newest", "timestampMS": 3000},
			{"id": "m2", "senderName": "Alice", "text": "mid", "timestampMS": 2000},
			{"id": "m1", "senderName": "Alice", "text": "old", "timestampMS": 500}
		], "cursor": "next"}`))
	}))
	defer srv.Close()

	msgs, err := NewClient("tok", srv.URL).ListMessages(context.Background(), "c1", triage.MessageQuery{SinceMS: 1000})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single page fetch, got %d", calls)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages within the window, got %d", len(msgs))
	}
	if msgs[0].ID != "m3" || msgs[1].ID != "m2" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestListMessagesSkipsOldOnAscendingPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [
			{"id": "m1", "senderName": "Alice", "text": "old", "timestampMS": 500},
			{"id": "m2", "senderName": "Alice", "text": "new", "timestampMS": 2000}
		]}`))
	}))
	defer srv.Close()

	msgs, err := NewClient("tok", srv.URL).ListMessages(context.Background(), "c1", triage.MessageQuery{SinceMS: 1000})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m2" {
		t.Fatalf("expected only the in-window message, got %+v", msgs)
	}
}

func TestListMessagesHonorsLimitAcrossPages(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte(`{"items": [
				{"id": "m1", "senderName": "A", "text": "one", "timestampMS": 1000},
				{"id": "m2", "senderName": "A", "text": "two", "timestampMS": 2000}
			], "cursor": "p2"}`))
			return
		}
		if got := r.URL.Query().Get("cursor"); got != "p2" {
			t.Errorf("expected cursor p2, got %q", got)
		}
		_, _ = w.Write([]byte(`{"items": [
			{"id": "m3", "senderName": "A", "text": "three", "timestampMS": 3000}
		]}`))
	}))
	defer srv.Close()

	msgs, err := NewClient("tok", srv.URL).ListMessages(context.Background(), "c1", triage.MessageQuery{Limit: 3})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 page fetches, got %d", calls)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
}

func TestSendMessagePayload(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v0/send-message" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient("tok", srv.URL).SendMessage(context.Background(), "c1", "hello", "m9")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got.ChatID != "c1" || got.Text != "hello" || got.ReplyToMessageID != "m9" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestErrorsCarryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient("tok", srv.URL).ListChats(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *beeper.Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.Status)
	}
}
