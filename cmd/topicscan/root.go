// Package main provides the entry point for the topicscan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
)

// NewRootCmd creates the root command for topicscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topicscan",
		Short: "Summarize web pages and research topics with AI",
		Long: `topicscan summarizes web pages and researches topics.

It fetches pages, extracts their readable text, and summarizes them through
the Groq API. The research command additionally searches the web via the
Google Custom Search API, summarizes each source, and consolidates the
summaries into a structured report.

Credentials are read from the environment (or a .env file):
  GROQ_API_KEY             Groq API key
  GOOGLE_SEARCH_API_KEY    Google Custom Search API key
  GOOGLE_SEARCH_ENGINE_ID  Programmable Search Engine id`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewResearchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		if hint := remediationHint(err); hint != "" {
			color.New(color.FgYellow).Fprintf(os.Stderr, "Tip: %s\n", hint)
		}
		os.Exit(1)
	}
}

// remediationHint maps well-known failures to a one-line fix suggestion.
func remediationHint(err error) string {
	switch {
	case errors.Is(err, config.ErrMissingGroqAPIKey):
		return "set GROQ_API_KEY in your environment or .env file"
	case errors.Is(err, config.ErrMissingSearchAPIKey):
		return "set GOOGLE_SEARCH_API_KEY in your environment or .env file"
	case errors.Is(err, config.ErrMissingSearchEngineID):
		return "set GOOGLE_SEARCH_ENGINE_ID in your environment or .env file"
	default:
		return ""
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
