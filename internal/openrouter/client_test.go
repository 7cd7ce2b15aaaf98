package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-triage/internal/triage"
)

func TestCompleteReturnsTrimmedContent(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "  Sounds good!  \n"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("key")
	c.baseURL = srv.URL

	out, err := c.Complete(context.Background(), "some/model", []triage.PromptMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "transcript"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Sounds good!" {
		t.Fatalf("expected trimmed content, got %q", out)
	}
	if got.Model != "some/model" || len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("key")
	c.baseURL = srv.URL

	_, err := c.Complete(context.Background(), "m", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *openrouter.Error, got %T", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", apiErr.Status)
	}
}

func TestCompleteMissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewClient("key")
	c.baseURL = srv.URL

	if _, err := c.Complete(context.Background(), "m", nil); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
