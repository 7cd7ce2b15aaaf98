package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chat-triage",
		Short:   "Triage unread chats, draft replies, copy or export transcripts",
		Version: Version,
	}

	rootCmd.AddCommand(triageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
