package triage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type Action int

const (
	ActionReply Action = iota
	ActionCopy
	ActionExport
	ActionCancel
)

// Prompter reads line-oriented answers from the interactive terminal. All
// prompts share one underlying scanner so buffered input is never lost
// between questions.
type Prompter struct {
	out   io.Writer
	lines <-chan string
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()
	return &Prompter{out: out, lines: lines}
}

// readLine blocks for the next input line. ok is false on end-of-input or
// context cancellation, which callers treat as a user cancel.
func (p *Prompter) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-p.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// SelectAction prompts once and re-prompts until a valid choice arrives.
// Empty input defaults to Reply. Interrupt or end-of-input yields
// ActionCancel without another prompt.
func (p *Prompter) SelectAction(ctx context.Context) Action {
	fmt.Fprint(p.out, "\nAction: [1] Reply  [2] Copy to clipboard  [3] Export to folder\n> ")
	for {
		choice, ok := p.readLine(ctx)
		if !ok {
			return ActionCancel
		}
		switch choice {
		case "", "1":
			return ActionReply
		case "2":
			return ActionCopy
		case "3":
			return ActionExport
		default:
			fmt.Fprint(p.out, "Invalid choice. Enter 1, 2, or 3.\n> ")
		}
	}
}

// Confirm asks a yes/no question defaulting to no.
func (p *Prompter) Confirm(ctx context.Context, question string) bool {
	fmt.Fprintf(p.out, "\n%s [y/N] ", question)
	answer, ok := p.readLine(ctx)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
