package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/topicscan/topicscan/internal/extract"
)

// TextSummarizer generates a summary for one page of extracted text.
// *llm.Client satisfies it; tests substitute fakes.
type TextSummarizer interface {
	SummarizeText(ctx context.Context, text string) (string, error)
}

// Extractor fetches a page and reduces it to readable text.
// *extract.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*extract.Content, error)
}

// Result is the summary of one page.
type Result struct {
	// URL is the summarized page.
	URL string

	// Title is the page title, when one could be determined.
	Title string

	// Summary is the generated summary.
	Summary string
}

// Summarizer fetches pages and summarizes their content.
type Summarizer struct {
	extractor Extractor
	llm       TextSummarizer
	logger    *slog.Logger
}

// New creates a Summarizer. A nil logger discards debug output.
func New(extractor Extractor, llm TextSummarizer, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Summarizer{extractor: extractor, llm: llm, logger: logger}
}

// Summarize fetches rawURL and summarizes its readable text. Every error is
// wrapped with the page URL.
func (s *Summarizer) Summarize(ctx context.Context, rawURL string) (*Result, error) {
	content, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", rawURL, err)
	}

	s.logger.Debug("extracted page text",
		slog.String("url", content.URL),
		slog.String("title", content.Title),
		slog.Int("chars", len(content.Text)))

	summary, err := s.llm.SummarizeText(ctx, content.Text)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", rawURL, err)
	}

	return &Result{URL: content.URL, Title: content.Title, Summary: summary}, nil
}
