package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const transcriptFileName = "transcript.txt"

// Exporter writes transcripts into per-run directories under root. The
// directory name is the run's local timestamp plus a slug of the chat title,
// with a numeric suffix on collision.
type Exporter struct {
	root string
	now  func() time.Time
}

func New(root string) *Exporter {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "exports"
	}
	return &Exporter{root: root, now: time.Now}
}

func (e *Exporter) Export(transcript, chatTitle string) (string, error) {
	base := e.now().Format("2006-01-02-15-04-05")
	if slug := slugTitle(chatTitle); slug != "" {
		base = base + "-" + slug
	}

	dir := filepath.Join(e.root, base)
	path := dir
	for counter := 2; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = fmt.Sprintf("%s-%d", dir, counter)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	file := filepath.Join(path, transcriptFileName)
	if err := os.WriteFile(file, []byte(transcript+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

var (
	slugSpaceRe   = regexp.MustCompile(`\s+`)
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\-]+`)
)

// slugTitle turns a chat title into a filesystem-safe directory suffix,
// capped at 60 characters. An unusable title yields "".
func slugTitle(title string) string {
	cleaned := strings.ToLower(strings.TrimSpace(title))
	if cleaned == "" {
		return ""
	}
	cleaned = slugSpaceRe.ReplaceAllString(cleaned, "-")
	cleaned = slugInvalidRe.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, "-")
	if len(cleaned) > 60 {
		cleaned = strings.TrimRight(cleaned[:60], "-")
	}
	return cleaned
}
