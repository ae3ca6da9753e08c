package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "responder",
		Short:         "Command-line client for the Responder email-marketing API",
		Long:          "Manages Responder lists, subscribers and personal fields. Credentials come from RESPONDER_* environment variables or configs/.env.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newListsCommand())
	rootCmd.AddCommand(newSubscribersCommand())
	rootCmd.AddCommand(newFieldsCommand())
	rootCmd.AddCommand(newJournalCommand())
	rootCmd.AddCommand(newOperationsCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
