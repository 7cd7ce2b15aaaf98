package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"chat-triage/internal/beeper"
	"chat-triage/internal/clipboard"
	"chat-triage/internal/config"
	"chat-triage/internal/editor"
	"chat-triage/internal/export"
	"chat-triage/internal/openrouter"
	"chat-triage/internal/picker"
	"chat-triage/internal/triage"

	"github.com/spf13/cobra"
)

func triageCmd() *cobra.Command {
	var (
		model         string
		maxChats      int
		maxMessages   int
		messageWindow string
		includeMuted  bool
		dryRun        bool
		noLLM         bool
		exportDir     string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Pick an unread chat and reply, copy, or export its transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if model == "" {
				model = cfg.Model
			}
			if err := cfg.Validate(!noLLM, model); err != nil {
				return err
			}

			windowKey := ""
			if messageWindow != "" {
				windowKey, err = triage.NormalizeWindow(messageWindow)
				if err != nil {
					return err
				}
			}
			if exportDir == "" {
				exportDir = cfg.ExportDir
			}

			var llm triage.Completer
			if !noLLM {
				llm = openrouter.NewClient(cfg.APIKey)
			}

			orch := &triage.Orchestrator{
				Chats:    beeper.NewClient(cfg.AccessToken, cfg.BaseURL),
				LLM:      llm,
				Picker:   picker.Picker{},
				Editor:   editor.Launcher{Command: cfg.Editor},
				Clip:     clipboard.Sink{},
				Exporter: export.New(exportDir),
				Prompter: triage.NewPrompter(os.Stdin, os.Stdout),
				Out:      os.Stdout,
				Log:      logger,
			}

			return orch.Run(ctx, triage.Options{
				Model:         model,
				MaxChats:      maxChats,
				MaxMessages:   maxMessages,
				MessageWindow: windowKey,
				IncludeMuted:  includeMuted,
				DryRun:        dryRun,
				NoLLM:         noLLM,
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "OpenRouter model override")
	cmd.Flags().IntVar(&maxChats, "max-chats", 50, "Cap on triage candidates")
	cmd.Flags().IntVar(&maxMessages, "max-messages", 0, "Optional safety cap for fetched messages")
	cmd.Flags().StringVar(&messageWindow, "message-window", "", "Time window for messages (today, 2d, 7d, 14d, 30d, 60d, 365d, all)")
	cmd.Flags().BoolVar(&includeMuted, "include-muted", false, "Offer muted chats too")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stop before sending the reply")
	cmd.Flags().BoolVar(&noLLM, "no-llm", false, "Start from a blank draft instead of an LLM one")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Export output directory (default \"exports\")")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	cmd.SilenceUsage = true

	return cmd
}
