package llm

import (
	"context"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/topicscan/topicscan/internal/model"
)

// Default client settings, overridable via options.
const (
	// defaultBaseURL is Groq's OpenAI-compatible endpoint.
	defaultBaseURL = "https://api.groq.com/openai/v1"

	// defaultModel is the reasoning model used for summaries.
	defaultModel = "deepseek-r1-distill-llama-70b"

	// defaultTemperature balances consistency against variety.
	defaultTemperature = 0.7

	// defaultMaxTokens bounds per-page summaries.
	defaultMaxTokens = 1000

	// defaultConsolidateMaxTokens bounds the consolidated report, which covers
	// several sources and needs more room.
	defaultConsolidateMaxTokens = 1500

	// defaultMaxInputChars truncates page text before it is embedded in the
	// prompt, keeping requests under the model's context window.
	defaultMaxInputChars = 10000

	// defaultTimeout bounds each completion request. Reasoning models can
	// spend a minute or more thinking before the answer arrives.
	defaultTimeout = 120 * time.Second
)

// Client generates summaries through a chat completion API.
type Client struct {
	api *openai.Client

	model                string
	temperature          float32
	maxTokens            int
	consolidateMaxTokens int
	maxInputChars        int
}

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig collects settings before the underlying SDK client is built.
type clientConfig struct {
	baseURL              string
	httpClient           *http.Client
	model                string
	temperature          float32
	maxTokens            int
	consolidateMaxTokens int
	maxInputChars        int
}

// WithBaseURL overrides the API endpoint. Used by tests and by anyone
// pointing the tool at a different OpenAI-compatible provider.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, including its timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *clientConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *clientConfig) {
		c.temperature = t
	}
}

// WithMaxTokens sets the completion budget for per-page summaries.
func WithMaxTokens(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithConsolidateMaxTokens sets the completion budget for the consolidated
// report.
func WithConsolidateMaxTokens(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.consolidateMaxTokens = n
		}
	}
}

// WithMaxInputChars sets the input truncation threshold.
func WithMaxInputChars(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxInputChars = n
		}
	}
}

// NewClient creates a Client authenticated with apiKey against Groq's
// endpoint unless WithBaseURL overrides it.
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:              defaultBaseURL,
		model:                defaultModel,
		temperature:          defaultTemperature,
		maxTokens:            defaultMaxTokens,
		consolidateMaxTokens: defaultConsolidateMaxTokens,
		maxInputChars:        defaultMaxInputChars,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiCfg := openai.DefaultConfig(apiKey)
	apiCfg.BaseURL = cfg.baseURL
	if cfg.httpClient != nil {
		apiCfg.HTTPClient = cfg.httpClient
	} else {
		apiCfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		api:                  openai.NewClientWithConfig(apiCfg),
		model:                cfg.model,
		temperature:          cfg.temperature,
		maxTokens:            cfg.maxTokens,
		consolidateMaxTokens: cfg.consolidateMaxTokens,
		maxInputChars:        cfg.maxInputChars,
	}
}

// Model returns the model name requests are sent with.
func (c *Client) Model() string {
	return c.model
}

// SummarizeText summarizes one page of extracted text into three main
// points. Text beyond the input limit is truncated before prompting.
func (c *Client) SummarizeText(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", &SummarizationError{Op: "summarize", Model: c.model, Err: ErrEmptyInput}
	}
	if len(text) > c.maxInputChars {
		text = text[:c.maxInputChars]
	}

	return c.complete(ctx, "summarize", summaryPrompt(text), c.maxTokens)
}

// Consolidate combines per-source summaries into a structured research
// report for topic. An empty summary list still produces a request: the
// prompt is degenerate but the model's answer documents that nothing could
// be gathered, which is more useful in a saved report than an error.
func (c *Client) Consolidate(ctx context.Context, topic string, summaries []model.SourceSummary) (string, error) {
	return c.complete(ctx, "consolidate", consolidatePrompt(topic, summaries), c.consolidateMaxTokens)
}

// complete sends one user-role chat completion and returns its content.
func (c *Client) complete(ctx context.Context, op, prompt string, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", &SummarizationError{Op: op, Model: c.model, Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &SummarizationError{Op: op, Model: c.model, Err: ErrEmptyCompletion}
	}

	return resp.Choices[0].Message.Content, nil
}
