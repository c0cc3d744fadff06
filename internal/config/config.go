package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Where a value mirrors a limit of an external API (token budgets, result
// counts) the constraint is noted on the constant.
const (
	// DefaultModel is the Groq model used for summarization and consolidation.
	DefaultModel = "deepseek-r1-distill-llama-70b"

	// DefaultTemperature controls sampling randomness for generated text.
	// Valid range is 0.0 to 1.0.
	DefaultTemperature = 0.7

	// DefaultMaxTokens is the maximum output token budget for a single
	// per-page summary.
	DefaultMaxTokens = 1000

	// DefaultConsolidateMaxTokens is the output budget for the consolidated
	// report. Larger than per-page summaries because it spans every source.
	DefaultConsolidateMaxTokens = 1500

	// DefaultMaxInputChars caps how much extracted page text is embedded in
	// the summarization prompt. Keeps the request inside the model's context
	// window regardless of page size.
	DefaultMaxInputChars = 10000

	// DefaultMaxSources is the number of search results to process per
	// research run. The Custom Search API returns at most 10 per request.
	DefaultMaxSources = 5

	// MaxSourcesLimit is the hard cap on --max-sources, matching the Custom
	// Search API's per-request maximum.
	MaxSourcesLimit = 10

	// DefaultFetchTimeout bounds each page fetch. Pages that take longer are
	// treated as failed sources.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultLLMTimeout bounds each completion API call. The upstream tool
	// this replaces had no timeout here; we make it explicit and
	// configurable instead of waiting forever.
	DefaultLLMTimeout = 120 * time.Second

	// DefaultMaxBodySize limits the response body size read from a page.
	// 5MB is sufficient for HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent is sent with page fetches. A browser-like User-Agent
	// avoids the blanket 403s many sites return to obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	// DefaultSearchEndpoint is the Google Custom Search JSON API endpoint.
	DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

	// DefaultGroqBaseURL is the OpenAI-compatible Groq API base URL.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// AppName is the application name used for XDG directory paths.
	AppName = "topicscan"
)

// Config holds all configuration options for topicscan.
// This struct is populated from CLI flags and the optional config file, then
// passed through the application via dependency injection rather than global
// state.
type Config struct {
	// Model is the chat-completion model identifier.
	Model string

	// Temperature is the sampling temperature for generated text (0.0-1.0).
	Temperature float64

	// MaxTokens is the maximum output token budget for per-page summaries.
	MaxTokens int

	// ConsolidateMaxTokens is the output token budget for the consolidated
	// research report.
	ConsolidateMaxTokens int

	// MaxInputChars caps the extracted text embedded in a summarization
	// prompt. Text beyond this budget is truncated before prompt assembly.
	MaxInputChars int

	// MaxSources is the number of search results requested per research run.
	MaxSources int

	// FetchTimeout is the per-request timeout for page fetches.
	FetchTimeout time.Duration

	// LLMTimeout is the per-request timeout for completion API calls.
	LLMTimeout time.Duration

	// MaxBodySize is the maximum page response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with page fetches.
	UserAgent string

	// SearchEndpoint is the search API URL. Overridable for testing.
	SearchEndpoint string

	// GroqBaseURL is the completion API base URL. Overridable for testing
	// or for any OpenAI-compatible endpoint.
	GroqBaseURL string

	// ShowThink keeps the model's reasoning section in displayed output.
	// By default the reasoning emitted by thinking models is stripped and
	// only the final answer is shown.
	ShowThink bool

	// JSONOutput renders the research report as JSON to the output
	// destination instead of the human-readable console format.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput renders the research report as Markdown.
	// Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputPath, when set, redirects report output to this file.
	OutputPath string

	// NoSave disables writing the per-run JSON result file and the history
	// database record.
	NoSave bool

	// ResultDir is the directory the per-run JSON result file is written to.
	// Empty means the current working directory, matching the upstream
	// behavior of dropping result files next to the invocation.
	ResultDir string

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
// Many defaults are non-zero, so relying on zero values is not an option;
// this constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Model:                DefaultModel,
		Temperature:          DefaultTemperature,
		MaxTokens:            DefaultMaxTokens,
		ConsolidateMaxTokens: DefaultConsolidateMaxTokens,
		MaxInputChars:        DefaultMaxInputChars,
		MaxSources:           DefaultMaxSources,
		FetchTimeout:         DefaultFetchTimeout,
		LLMTimeout:           DefaultLLMTimeout,
		MaxBodySize:          DefaultMaxBodySize,
		UserAgent:            DefaultUserAgent,
		SearchEndpoint:       DefaultSearchEndpoint,
		GroqBaseURL:          DefaultGroqBaseURL,
		DBDir:                XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for topicscan.
// On Linux: ~/.local/share/topicscan
// On macOS: ~/Library/Application Support/topicscan
// On Windows: %LOCALAPPDATA%\topicscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for topicscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any network activity, and
// returns the first error found: fixing one error often makes others
// irrelevant.
func (c *Config) Validate() error {
	if c.Model == "" {
		return ErrNoModel
	}

	if c.Temperature < 0.0 || c.Temperature > 1.0 {
		return ErrInvalidTemperature
	}

	if c.MaxTokens <= 0 || c.ConsolidateMaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}

	if c.MaxInputChars <= 0 {
		return ErrInvalidMaxInputChars
	}

	if c.MaxSources <= 0 || c.MaxSources > MaxSourcesLimit {
		return ErrInvalidMaxSources
	}

	if c.FetchTimeout <= 0 || c.LLMTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingReportFormats
	}

	return nil
}
