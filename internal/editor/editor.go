package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Error is the editor-invocation error kind.
type Error struct {
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("editor: %v", e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Launcher opens the configured editor on a temp file seeded with the draft.
type Launcher struct {
	Command string
}

// Edit blocks until the editor exits and returns the edited text, trimmed.
// The temp file is removed afterwards; the draft only survives in whatever
// the caller does with the return value.
func (l Launcher) Edit(ctx context.Context, initial string) (string, error) {
	if l.Command == "" {
		return "", &Error{Err: fmt.Errorf("EDITOR is not set")}
	}

	tmp, err := os.CreateTemp("", "chat-triage-*.txt")
	if err != nil {
		return "", &Error{Err: fmt.Errorf("create temp file: %w", err)}
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(initial); err != nil {
		_ = tmp.Close()
		return "", &Error{Err: fmt.Errorf("seed temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return "", &Error{Err: fmt.Errorf("close temp file: %w", err)}
	}

	cmd := exec.CommandContext(ctx, l.Command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", &Error{Err: fmt.Errorf("run %s: %w", l.Command, err)}
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("read edited file: %w", err)}
	}
	return strings.TrimSpace(string(edited)), nil
}
