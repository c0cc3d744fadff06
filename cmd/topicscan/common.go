package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
	"github.com/topicscan/topicscan/internal/extract"
	"github.com/topicscan/topicscan/internal/llm"
	"github.com/topicscan/topicscan/internal/log"
	"github.com/topicscan/topicscan/internal/report"
	"github.com/topicscan/topicscan/internal/search"
)

// addModelFlags registers the completion-model flags shared by the summarize
// and research commands.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Chat-completion model to use")
	cmd.Flags().Float64P("temperature", "t", config.DefaultTemperature,
		"Sampling temperature (0.0-1.0)")
	cmd.Flags().Int("max-tokens", config.DefaultMaxTokens,
		"Output token budget for per-page summaries")
	cmd.Flags().Duration("llm-timeout", config.DefaultLLMTimeout,
		"Timeout for each completion API call")
	cmd.Flags().Duration("fetch-timeout", config.DefaultFetchTimeout,
		"Timeout for each page fetch")
	cmd.Flags().Bool("show-think", false,
		"Show the model's thought process in output")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .topicscan in current or home directory)")
}

// buildConfig creates a Config from the optional config file and flags.
// File values override defaults; explicitly set flags override the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, it must exist.
	// Otherwise a missing file just means defaults.
	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.Apply(cfg)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	// Flags win over file values only when the user set them.
	if cmd.Flags().Changed("model") {
		if cfg.Model, err = cmd.Flags().GetString("model"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("temperature") {
		if cfg.Temperature, err = cmd.Flags().GetFloat64("temperature"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-tokens") {
		if cfg.MaxTokens, err = cmd.Flags().GetInt("max-tokens"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("llm-timeout") {
		if cfg.LLMTimeout, err = cmd.Flags().GetDuration("llm-timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fetch-timeout") {
		if cfg.FetchTimeout, err = cmd.Flags().GetDuration("fetch-timeout"); err != nil {
			return nil, err
		}
	}

	if cfg.ShowThink, err = cmd.Flags().GetBool("show-think"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// argOrPrompt returns the joined positional arguments, or prompts for input
// on the command's stdin when none were given.
func argOrPrompt(cmd *cobra.Command, args []string, prompt string) (string, error) {
	value := strings.TrimSpace(strings.Join(args, " "))
	if value != "" {
		return value, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input provided")
	}

	value = strings.TrimSpace(scanner.Text())
	if value == "" {
		return "", errors.New("no input provided")
	}
	return value, nil
}

// setupLogger creates the credential-masking structured logger and installs
// it as the default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// newExtractor builds the page extractor from config.
func newExtractor(cfg *config.Config) *extract.Extractor {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	return extract.New(client,
		extract.WithUserAgent(cfg.UserAgent),
		extract.WithMaxBodySize(cfg.MaxBodySize),
	)
}

// newLLMClient builds the completion client from config and credentials.
func newLLMClient(cfg *config.Config, creds config.Credentials) *llm.Client {
	return llm.NewClient(creds.GroqAPIKey,
		llm.WithBaseURL(cfg.GroqBaseURL),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.LLMTimeout}),
		llm.WithModel(cfg.Model),
		llm.WithTemperature(float32(cfg.Temperature)),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithConsolidateMaxTokens(cfg.ConsolidateMaxTokens),
		llm.WithMaxInputChars(cfg.MaxInputChars),
	)
}

// newSearchClient builds the Custom Search client from config and credentials.
func newSearchClient(cfg *config.Config, creds config.Credentials) *search.Client {
	return search.NewClient(
		&http.Client{Timeout: cfg.FetchTimeout},
		creds.SearchAPIKey,
		creds.SearchEngineID,
		search.WithEndpoint(cfg.SearchEndpoint),
	)
}

// openOutput resolves the report destination: the given file path, or
// fallback when no path is set. The returned closer is a no-op for fallback.
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// resultWriter selects the report writer for the configured format.
func resultWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(out, report.WithMarkdownShowThink(cfg.ShowThink))
	default:
		return report.NewConsoleWriter(out, report.WithShowThink(cfg.ShowThink))
	}
}
