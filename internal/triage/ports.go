package triage

import (
	"context"

	"chat-triage/internal/clipboard"
)

// MessageQuery bounds a message fetch. Zero values mean unbounded.
type MessageQuery struct {
	Limit   int
	SinceMS int64
}

// ChatService is the remote chat backend.
type ChatService interface {
	ListChats(ctx context.Context) ([]ChatSummary, error)
	ListMessages(ctx context.Context, chatID string, q MessageQuery) ([]Message, error)
	SendMessage(ctx context.Context, chatID, text, replyToID string) error
}

// PromptMessage is one role-tagged message of an LLM prompt.
type PromptMessage struct {
	Role    string
	Content string
}

// Completer turns a prompt into a draft reply.
type Completer interface {
	Complete(ctx context.Context, model string, messages []PromptMessage) (string, error)
}

// ChatPicker presents candidates and blocks until the user chooses one.
// An empty id means no selection was made.
type ChatPicker interface {
	Pick(ctx context.Context, chats []ChatSummary) (string, error)
}

// Editor opens the user's editor seeded with initial text and returns the
// edited result, trimmed.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// Clipboard resolves and drives the system clipboard utility.
type Clipboard interface {
	Detect() (clipboard.Command, error)
	Copy(ctx context.Context, text string, cmd clipboard.Command) error
}

// Exporter writes a rendered transcript to disk and returns the created path.
type Exporter interface {
	Export(transcript, chatTitle string) (string, error)
}
