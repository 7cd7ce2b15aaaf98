package triage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"chat-triage/internal/clipboard"
)

// ErrModelRequired is returned when the reply flow is entered without a
// model identifier and LLM drafting was not disabled.
var ErrModelRequired = errors.New("OPENROUTER_MODEL or --model is required")

// Options are the per-run settings, assembled once at startup.
type Options struct {
	Model         string
	MaxChats      int
	MaxMessages   int
	MessageWindow string // canonical window key, or "" to ask interactively
	IncludeMuted  bool
	DryRun        bool
	NoLLM         bool
}

// Orchestrator drives one triage run end to end. Every step is sequential;
// the only blocking points are user prompts and collaborator calls.
type Orchestrator struct {
	Chats    ChatService
	LLM      Completer
	Picker   ChatPicker
	Editor   Editor
	Clip     Clipboard
	Exporter Exporter
	Prompter *Prompter
	Out      io.Writer
	Log      *slog.Logger

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) log() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run executes the pipeline: fetch, filter, select, fetch messages, choose
// an action, carry it out. It returns nil for every user-initiated stop and
// an error only for configuration, environment, or collaborator faults.
func (o *Orchestrator) Run(ctx context.Context, opts Options) error {
	log := o.log()

	chats, err := o.Chats.ListChats(ctx)
	if err != nil {
		log.Error("list chats failed", "err", err)
		return err
	}
	log.Debug("fetched chats", "count", len(chats))

	candidates := FilterChats(chats, opts.IncludeMuted, opts.MaxChats)
	if len(candidates) == 0 {
		fmt.Fprintln(o.Out, "No chats need reply.")
		return nil
	}
	log.Debug("eligible chats", "count", len(candidates))

	chatID, err := o.Picker.Pick(ctx, candidates)
	if err != nil {
		log.Error("chat selection failed", "err", err)
		return err
	}
	if chatID == "" {
		fmt.Fprintln(o.Out, "No chat selected.")
		return nil
	}
	chatTitle := ""
	for _, c := range candidates {
		if c.ID == chatID {
			chatTitle = c.Title
			break
		}
	}

	windowKey := opts.MessageWindow
	if windowKey == "" {
		key, ok := o.Prompter.SelectWindow(ctx)
		if !ok {
			fmt.Fprintln(o.Out, "Cancelled.")
			return nil
		}
		windowKey = key
	}
	sinceMS, bounded := WindowSinceMS(windowKey, o.now())

	query := MessageQuery{Limit: opts.MaxMessages}
	if bounded {
		query.SinceMS = sinceMS
	}
	messages, err := o.Chats.ListMessages(ctx, chatID, query)
	if err != nil {
		log.Error("list messages failed", "chat", chatID, "err", err)
		return err
	}
	SortMessages(messages)
	log.Debug("fetched messages", "chat", chatID, "count", len(messages))

	transcript := FormatPlain(messages)
	if transcript == "" {
		if bounded {
			fmt.Fprintln(o.Out, "No messages found in the selected time window.")
		} else {
			fmt.Fprintln(o.Out, "No message content available.")
		}
		return nil
	}

	replyTo := LastInboundID(messages)

	switch o.Prompter.SelectAction(ctx) {
	case ActionCancel:
		fmt.Fprintln(o.Out, "Cancelled.")
		return nil
	case ActionCopy:
		return o.runCopy(ctx, messages)
	case ActionExport:
		return o.runExport(messages, chatTitle)
	default:
		return o.runReply(ctx, opts, chatID, transcript, replyTo)
	}
}

func (o *Orchestrator) runCopy(ctx context.Context, messages []Message) error {
	cmd, err := o.Clip.Detect()
	if err != nil {
		return fmt.Errorf("no clipboard tool found, install one of: %s: %w", clipboard.CandidateNames(), err)
	}
	if err := o.Clip.Copy(ctx, FormatWithTimestamps(messages), cmd); err != nil {
		o.log().Error("clipboard copy failed", "tool", cmd.Name, "err", err)
		return fmt.Errorf("clipboard copy failed: %w", err)
	}
	fmt.Fprintln(o.Out, "Transcript copied to clipboard.")
	return nil
}

func (o *Orchestrator) runExport(messages []Message, chatTitle string) error {
	path, err := o.Exporter.Export(FormatWithTimestamps(messages), chatTitle)
	if err != nil {
		o.log().Error("export failed", "err", err)
		return fmt.Errorf("export transcript: %w", err)
	}
	fmt.Fprintf(o.Out, "Exported transcript to: %s\n", path)
	return nil
}

func (o *Orchestrator) runReply(ctx context.Context, opts Options, chatID, transcript, replyTo string) error {
	draft := ""
	if !opts.NoLLM {
		if opts.Model == "" {
			return ErrModelRequired
		}
		var err error
		draft, err = o.LLM.Complete(ctx, opts.Model, BuildReplyPrompt(transcript))
		if err != nil {
			o.log().Error("draft completion failed", "model", opts.Model, "err", err)
			return err
		}
	}

	edited, err := o.Editor.Edit(ctx, draft)
	if err != nil {
		o.log().Error("editor failed", "err", err)
		return err
	}
	if edited == "" {
		fmt.Fprintln(o.Out, "Empty message, aborting.")
		return nil
	}

	fmt.Fprintln(o.Out, "\nDraft reply:")
	fmt.Fprintln(o.Out, renderDraft(edited))

	if !o.Prompter.Confirm(ctx, "Send this message?") {
		fmt.Fprintln(o.Out, "Cancelled.")
		return nil
	}
	if opts.DryRun {
		fmt.Fprintln(o.Out, "Dry run enabled. Not sending.")
		return nil
	}

	if err := o.Chats.SendMessage(ctx, chatID, edited, replyTo); err != nil {
		o.log().Error("send failed", "chat", chatID, "err", err)
		return err
	}
	fmt.Fprintln(o.Out, "Message sent.")
	return nil
}
