package triage

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const draftRenderWidth = 80

// renderDraft pretty-prints the draft for the confirmation screen. Rendering
// is best-effort: any glamour failure falls back to the raw text, since the
// draft itself is what gets sent.
func renderDraft(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(draftRenderWidth),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
