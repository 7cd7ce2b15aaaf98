package triage

const systemPrompt = "You are a concise, friendly texting assistant. " +
	"Write a single draft reply with no preamble or labels."

// BuildReplyPrompt wraps a plain transcript in the drafting prompt.
func BuildReplyPrompt(transcript string) []PromptMessage {
	userPrompt := "Here is the chat transcript. Draft one concise, friendly reply. " +
		"Do not include quotes or extra commentary.\n\n" + transcript
	return []PromptMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
}
