package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
	"github.com/topicscan/topicscan/internal/report"
	"github.com/topicscan/topicscan/internal/summarize"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize a single web page",
		Long: `Summarize fetches a web page, extracts its readable text, and generates
a concise three-point summary through the Groq API.

Examples:
  # Summarize an article
  topicscan summarize https://example.com/article

  # Use a different model
  topicscan summarize -m llama-3.3-70b-versatile https://example.com/article

  # Keep the model's thought process in the output
  topicscan summarize --show-think https://example.com/article`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummarizeCmd,
	}

	addModelFlags(cmd)

	return cmd
}

// runSummarizeCmd executes the summarize command.
func runSummarizeCmd(cmd *cobra.Command, args []string) error {
	rawURL, err := argOrPrompt(cmd, args, "Enter the URL to summarize: ")
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if err := creds.RequireSummarizer(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	s := summarize.New(newExtractor(cfg), newLLMClient(cfg, creds), logger)

	fmt.Fprintf(cmd.OutOrStdout(), "Summarizing %s...\n", rawURL)

	result, err := s.Summarize(ctx, rawURL)
	if err != nil {
		return err
	}

	console := report.NewConsoleWriter(cmd.OutOrStdout(), report.WithShowThink(cfg.ShowThink))
	if _, err := console.WritePageSummary(result.Title, result.URL, result.Summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}
