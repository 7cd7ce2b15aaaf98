package triage

import "sort"

// Message is one normalized chat message. Timestamps are epoch milliseconds;
// the chat-service adapter normalizes whatever the wire carries before a
// Message is constructed.
type Message struct {
	ID          string
	SenderName  string
	IsSender    bool
	Text        string
	TimestampMS int64
}

// ChatPreview mirrors the most recent message of a chat.
type ChatPreview struct {
	Text     string
	IsSender bool
}

type ChatSummary struct {
	ID             string
	Title          string
	UnreadCount    int
	LastActivityMS int64
	Muted          bool
	Preview        ChatPreview
}

// SortMessages orders messages ascending by timestamp. The sort is stable so
// same-millisecond messages keep their fetch order.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].TimestampMS < messages[j].TimestampMS
	})
}

// LastInboundID returns the id of the chronologically last message not
// authored by the local user, or "" if there is none. Callers pass an
// already-sorted slice.
func LastInboundID(messages []Message) string {
	id := ""
	for _, m := range messages {
		if !m.IsSender {
			id = m.ID
		}
	}
	return id
}
