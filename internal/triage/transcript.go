package triage

import (
	"strings"
	"time"
)

// FormatPlain renders messages as "Speaker: text" lines. Messages whose
// trimmed body is empty are skipped; they are usually reactions or
// attachments without a caption and add nothing to the transcript.
func FormatPlain(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		b.WriteString(speaker(m))
		b.WriteString(": ")
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// FormatWithTimestamps renders messages like FormatPlain with each line
// prefixed by the message's local wall-clock time at minute precision.
func FormatWithTimestamps(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		ts := time.UnixMilli(m.TimestampMS).Format("2006-01-02 15:04")
		b.WriteString("[")
		b.WriteString(ts)
		b.WriteString("] ")
		b.WriteString(speaker(m))
		b.WriteString(": ")
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

func speaker(m Message) string {
	if m.IsSender {
		return "You"
	}
	return m.SenderName
}
