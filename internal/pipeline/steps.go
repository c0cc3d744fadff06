package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/topicscan/topicscan/internal/model"
	"github.com/topicscan/topicscan/internal/summarize"
)

// ErrNoSources is returned by the search step when the search API finds no
// results for the topic. The run aborts and no result file is written.
var ErrNoSources = errors.New("no sources found for topic")

// Searcher finds candidate sources for a topic.
// *search.Client satisfies it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]model.Source, error)
}

// PageSummarizer fetches and summarizes one page.
// *summarize.Summarizer satisfies it.
type PageSummarizer interface {
	Summarize(ctx context.Context, rawURL string) (*summarize.Result, error)
}

// Consolidator combines per-source summaries into one report.
// *llm.Client satisfies it.
type Consolidator interface {
	Consolidate(ctx context.Context, topic string, summaries []model.SourceSummary) (string, error)
}

// SearchStep queries the search API for candidate sources.
//
// Design decision: Searching is a separate step because its failure mode
// differs from the others: zero results means there is nothing to research
// and the run must abort before any model tokens are spent.
type SearchStep struct {
	// searcher performs the web search.
	searcher Searcher

	// maxSources is how many results to request.
	maxSources int

	// logger for structured logging.
	logger *slog.Logger
}

// NewSearchStep creates a search step requesting up to maxSources results.
func NewSearchStep(searcher Searcher, maxSources int, logger *slog.Logger) *SearchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchStep{searcher: searcher, maxSources: maxSources, logger: logger}
}

// Name returns the step name.
func (s *SearchStep) Name() string {
	return "search"
}

// Do executes the search. Zero results is a critical failure (ErrNoSources);
// the pipeline stops and nothing is persisted.
func (s *SearchStep) Do(ctx context.Context, result *model.ResearchResult) error {
	sources, err := s.searcher.Search(ctx, result.Topic, s.maxSources)
	if err != nil {
		return fmt.Errorf("search for %q: %w", result.Topic, err)
	}

	if len(sources) == 0 {
		return fmt.Errorf("%w: %q", ErrNoSources, result.Topic)
	}

	s.logger.Debug("search completed",
		"topic", result.Topic,
		"found", len(sources),
	)

	result.Candidates = sources
	return nil
}

// SummarizeSourcesStep fetches and summarizes each candidate source in
// search order.
//
// Design decision: Sources are processed sequentially rather than
// concurrently. The summary order must match the search ranking, the model
// API rate-limits aggressive callers, and a handful of sources does not
// justify the coordination overhead.
type SummarizeSourcesStep struct {
	// summarizer fetches and summarizes one page.
	summarizer PageSummarizer

	// logger for structured logging.
	logger *slog.Logger

	// progress, when set, is called before each source is processed.
	progress func(index, total int, source model.Source)
}

// SummarizeSourcesStepOption configures a SummarizeSourcesStep.
type SummarizeSourcesStepOption func(*SummarizeSourcesStep)

// WithProgress sets a callback invoked before each source is processed,
// for interactive progress display.
func WithProgress(fn func(index, total int, source model.Source)) SummarizeSourcesStepOption {
	return func(s *SummarizeSourcesStep) {
		s.progress = fn
	}
}

// NewSummarizeSourcesStep creates a step that summarizes every candidate.
func NewSummarizeSourcesStep(summarizer PageSummarizer, logger *slog.Logger, opts ...SummarizeSourcesStepOption) *SummarizeSourcesStep {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SummarizeSourcesStep{summarizer: summarizer, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *SummarizeSourcesStep) Name() string {
	return "summarize_sources"
}

// Do processes each candidate in order. A source that fails to fetch or
// summarize is recorded as a failure and the remaining sources still run;
// only cancellation aborts the loop.
func (s *SummarizeSourcesStep) Do(ctx context.Context, result *model.ResearchResult) error {
	total := len(result.Candidates)
	for i, source := range result.Candidates {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.progress != nil {
			s.progress(i, total, source)
		}

		summarized, err := s.summarizer.Summarize(ctx, source.URL)
		if err != nil {
			s.logger.Warn("source failed, continuing",
				"url", source.URL,
				"error", err,
			)
			result.AddFailure(source.URL, err)
			continue
		}

		// The search result title is kept over the page's own title so the
		// report matches what the user saw in the ranking.
		result.AddSummary(source, summarized.Summary)
	}

	return nil
}

// ConsolidateStep combines the per-source summaries into one report.
type ConsolidateStep struct {
	// consolidator generates the combined report.
	consolidator Consolidator

	// logger for structured logging.
	logger *slog.Logger
}

// NewConsolidateStep creates the consolidation step.
func NewConsolidateStep(consolidator Consolidator, logger *slog.Logger) *ConsolidateStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsolidateStep{consolidator: consolidator, logger: logger}
}

// Name returns the step name.
func (s *ConsolidateStep) Name() string {
	return "consolidate"
}

// Do generates the consolidated summary. It runs even when every source
// failed: the prompt is degenerate then, but that is not an error case.
// Consolidation failure degrades to a diagnostic message rather than failing
// the step: the per-source summaries are already paid for and must survive
// into the saved result.
func (s *ConsolidateStep) Do(ctx context.Context, result *model.ResearchResult) error {
	summary, err := s.consolidator.Consolidate(ctx, result.Topic, result.Sources)
	if err != nil {
		s.logger.Warn("consolidation failed, keeping per-source summaries",
			"topic", result.Topic,
			"error", err,
		)
		result.ConsolidatedSummary = fmt.Sprintf("Error generating consolidated summary: %v", err)
		return nil
	}

	result.ConsolidatedSummary = summary
	return nil
}
