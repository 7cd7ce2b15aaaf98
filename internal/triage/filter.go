package triage

// NeedsReply reports whether a chat should be offered for triage: it has
// unread messages, the last message was not written by the local user, and
// it is not muted unless muted chats were requested.
func NeedsReply(chat ChatSummary, includeMuted bool) bool {
	if chat.UnreadCount <= 0 {
		return false
	}
	if chat.Preview.IsSender {
		return false
	}
	if chat.Muted && !includeMuted {
		return false
	}
	return true
}

// FilterChats applies NeedsReply over a fetched batch, capping the result at
// max when max is positive.
func FilterChats(chats []ChatSummary, includeMuted bool, max int) []ChatSummary {
	filtered := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		if NeedsReply(chat, includeMuted) {
			filtered = append(filtered, chat)
		}
	}
	if max > 0 && len(filtered) > max {
		filtered = filtered[:max]
	}
	return filtered
}
