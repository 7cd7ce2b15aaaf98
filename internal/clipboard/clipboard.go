package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrToolNotFound = errors.New("clipboard tool not found")

type Command struct {
	Name string
	Path string
	Args []string
}

// Candidate utilities in fixed priority order: the WSL Windows bridge first,
// then Wayland, then the two X11 tools. Detection only checks executable
// presence, never session environment, so it stays deterministic.
var candidates = []Command{
	{Name: "clip.exe"},
	{Name: "wl-copy"},
	{Name: "xclip", Args: []string{"-selection", "clipboard"}},
	{Name: "xsel", Args: []string{"--clipboard", "--input"}},
}

// CandidateNames lists the probed utilities for error messages.
func CandidateNames() string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// SelectCommand probes candidates with lookPath and returns the first hit.
func SelectCommand(lookPath func(string) (string, error)) (Command, error) {
	for _, c := range candidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		c.Path = path
		return c, nil
	}
	return Command{}, ErrToolNotFound
}

// Copy pipes text into the resolved clipboard command. A non-zero exit is a
// hard failure.
func Copy(ctx context.Context, text string, cmdDef Command) error {
	cmd := exec.CommandContext(ctx, cmdDef.Path, cmdDef.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("clipboard stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start clipboard command: %w", err)
	}

	if _, err := stdin.Write([]byte(text)); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return fmt.Errorf("write clipboard data: %w", err)
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("clipboard command failed: %w", err)
	}
	return nil
}

// Sink adapts the package functions to the orchestrator's clipboard port.
// LookPath is injectable for tests and defaults to exec.LookPath.
type Sink struct {
	LookPath func(string) (string, error)
}

func (s Sink) Detect() (Command, error) {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return SelectCommand(lookPath)
}

func (s Sink) Copy(ctx context.Context, text string, cmd Command) error {
	return Copy(ctx, text, cmd)
}
