package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
	"github.com/topicscan/topicscan/internal/database"
	"github.com/topicscan/topicscan/internal/model"
	"github.com/topicscan/topicscan/internal/pipeline"
	"github.com/topicscan/topicscan/internal/report"
	"github.com/topicscan/topicscan/internal/summarize"
)

// NewResearchCmd creates the research command.
func NewResearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research <topic>",
		Short: "Research a topic using web search and AI summarization",
		Long: `Research searches the web for sources about a topic, summarizes each
source, and consolidates the summaries into a structured report.

The run searches via the Google Custom Search API, fetches and summarizes
each result through the Groq API, and finishes with a consolidated summary
covering an overview, key findings, different perspectives, and conclusions.
Sources that fail to fetch or summarize are reported and skipped; the run
continues with the remaining sources.

Results are printed to the terminal, saved as a JSON file, and recorded in
the research history database (see the history command).

Examples:
  # Research a topic with the default five sources
  topicscan research "battery recycling"

  # Use more sources
  topicscan research --max-sources 8 "battery recycling"

  # Emit the report as Markdown to a file
  topicscan research --markdown -o report.md "battery recycling"

  # Skip saving the result file and history record
  topicscan research --no-save "battery recycling"`,
		Args: cobra.ArbitraryArgs,
		RunE: runResearchCmd,
	}

	addModelFlags(cmd)

	cmd.Flags().IntP("max-sources", "n", config.DefaultMaxSources,
		fmt.Sprintf("Number of sources to analyze (1-%d)", config.MaxSourcesLimit))
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not save the result file or history record")
	cmd.Flags().String("result-dir", "",
		"Directory for result files (default: current directory)")

	return cmd
}

// runResearchCmd executes the research command.
func runResearchCmd(cmd *cobra.Command, args []string) error {
	topic, err := argOrPrompt(cmd, args, "Enter the topic to research: ")
	if err != nil {
		return err
	}

	cfg, err := buildResearchConfig(cmd)
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
	if err := creds.RequireSearch(); err != nil {
		return err
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

	return runResearch(ctx, cmd, cfg, creds, topic, logger)
}

// buildResearchConfig extends the shared config with research-only flags.
func buildResearchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("max-sources") {
		if cfg.MaxSources, err = cmd.Flags().GetInt("max-sources"); err != nil {
			return nil, err
		}
	}
	if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.NoSave, err = cmd.Flags().GetBool("no-save"); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("result-dir") {
		if cfg.ResultDir, err = cmd.Flags().GetString("result-dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runResearch executes the research pipeline and handles output and
// persistence.
func runResearch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, creds config.Credentials, topic string, logger *slog.Logger) error {
	out := cmd.OutOrStdout()

	llmClient := newLLMClient(cfg, creds)
	summarizer := summarize.New(newExtractor(cfg), llmClient, logger)
	searcher := newSearchClient(cfg, creds)

	progress := func(index, total int, source model.Source) {
		fmt.Fprintf(out, "[%d/%d] Summarizing: %s\n", index+1, total, source.Title)
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewSearchStep(searcher, cfg.MaxSources, logger),
		pipeline.NewSummarizeSourcesStep(summarizer, logger, pipeline.WithProgress(progress)),
		pipeline.NewConsolidateStep(llmClient, logger),
	)

	fmt.Fprintf(out, "Researching %q (up to %d sources)...\n", topic, cfg.MaxSources)

	result := model.NewResearchResult(topic, cfg.MaxSources)
	start := time.Now()
	if err := p.Execute(ctx, result); err != nil {
		return err
	}
	result.Elapsed = time.Since(start)

	if err := outputResult(cfg, out, result); err != nil {
		return err
	}

	return persistResult(ctx, cfg, out, result, logger)
}

// outputResult renders the result in the configured format and destination.
func outputResult(cfg *config.Config, fallback io.Writer, result *model.ResearchResult) error {
	dest, closeFn, err := openOutput(cfg.OutputPath, fallback)
	if err != nil {
		return err
	}

	if _, err := resultWriter(cfg, dest).Write(result); err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return closeFn()
}

// persistResult saves the JSON result file and the history database record.
func persistResult(ctx context.Context, cfg *config.Config, out io.Writer, result *model.ResearchResult, logger *slog.Logger) error {
	if cfg.NoSave {
		return nil
	}

	resultDir := cfg.ResultDir
	if resultDir == "" {
		resultDir = "."
	}

	path, err := report.SaveJSON(resultDir, result)
	if err != nil {
		return fmt.Errorf("failed to save result file: %w", err)
	}
	fmt.Fprintf(out, "\nResults saved to: %s\n", path)

	// History persistence is best-effort: the result file already exists.
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return nil
	}
	defer db.Close()

	if _, err := db.SaveRun(ctx, result); err != nil {
		logger.Warn("failed to record run in history", "error", err)
	}
	return nil
}
