package triage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func promptWith(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestSelectActionDefaultsToReply(t *testing.T) {
	p, _ := promptWith("\n")
	if got := p.SelectAction(context.Background()); got != ActionReply {
		t.Fatalf("expected Reply for empty input, got %v", got)
	}
}

func TestSelectActionTokens(t *testing.T) {
	cases := []struct {
		input string
		want  Action
	}{
		{"1\n", ActionReply},
		{"2\n", ActionCopy},
		{"3\n", ActionExport},
		{"  2  \n", ActionCopy},
	}
	for _, c := range cases {
		p, _ := promptWith(c.input)
		if got := p.SelectAction(context.Background()); got != c.want {
			t.Fatalf("input %q: expected %v, got %v", c.input, c.want, got)
		}
	}
}

func TestSelectActionRepromptsOnInvalid(t *testing.T) {
	p, out := promptWith("9\n2\n")
	if got := p.SelectAction(context.Background()); got != ActionCopy {
		t.Fatalf("expected Copy after retry, got %v", got)
	}
	if n := strings.Count(out.String(), "Invalid choice"); n != 1 {
		t.Fatalf("expected exactly one re-prompt, got %d", n)
	}
}

func TestSelectActionCancelsOnEOF(t *testing.T) {
	p, _ := promptWith("")
	if got := p.SelectAction(context.Background()); got != ActionCancel {
		t.Fatalf("expected Cancel on end of input, got %v", got)
	}
}

func TestSelectActionCancelsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A blocked reader: only the cancelled context can release the prompt.
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	p := NewPrompter(r, &bytes.Buffer{})
	if got := p.SelectAction(ctx); got != ActionCancel {
		t.Fatalf("expected Cancel on interrupt, got %v", got)
	}
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, c := range cases {
		p, _ := promptWith(c.input)
		if got := p.Confirm(context.Background(), "Send this message?"); got != c.want {
			t.Fatalf("input %q: expected %v, got %v", c.input, c.want, got)
		}
	}
}
