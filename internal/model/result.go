package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ResearchResult is the complete outcome of one topic research run.
// It accumulates state as the pipeline progresses: Sources and Failures are
// appended one at a time during source processing, and ConsolidatedSummary is
// set once at the end. All mutation happens on the single control thread
// executing the pipeline; there are no concurrent writers.
type ResearchResult struct {
	// Topic is the research topic as entered by the user.
	Topic string `json:"topic"`

	// Timestamp is when the research run started, in RFC 3339 format.
	Timestamp time.Time `json:"timestamp"`

	// Candidates holds the sources the search step found, before
	// summarization. It is working state for the pipeline and is not part of
	// the persisted result.
	Candidates []Source `json:"-"`

	// Sources holds the successfully summarized sources, in the order the
	// search API returned them. Failed sources are not included here.
	Sources []SourceSummary `json:"sources"`

	// Failures records the sources that could not be processed.
	// Omitted from JSON when every source succeeded.
	Failures []SourceFailure `json:"failures,omitempty"`

	// ConsolidatedSummary is the combined report generated from all source
	// summaries. When consolidation itself fails, this holds a diagnostic
	// message rather than the run failing outright.
	ConsolidatedSummary string `json:"consolidated_summary"`

	// Requested is the number of sources the search step was asked for.
	Requested int `json:"requested"`

	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// NewResearchResult creates a ResearchResult for the given topic with the
// timestamp set to now.
func NewResearchResult(topic string, requested int) *ResearchResult {
	return &ResearchResult{
		Topic:     topic,
		Timestamp: time.Now(),
		Sources:   make([]SourceSummary, 0),
		Requested: requested,
	}
}

// AddSummary appends a successfully summarized source.
// Order of calls is significant: it matches the search result order and is
// preserved in the final report.
func (r *ResearchResult) AddSummary(s Source, summary string) {
	r.Sources = append(r.Sources, SourceSummary{Source: s, Summary: summary})
}

// AddFailure records a source that could not be processed.
func (r *ResearchResult) AddFailure(url string, err error) {
	r.Failures = append(r.Failures, SourceFailure{URL: url, Reason: err.Error()})
}

// Processed returns the number of successfully summarized sources.
func (r *ResearchResult) Processed() int {
	return len(r.Sources)
}

// FailureCount returns the number of sources that failed to process.
func (r *ResearchResult) FailureCount() int {
	return len(r.Failures)
}

// FileName returns the deterministic result file name for this run:
// research_<topic>_<YYYYMMDD_HHMMSS>.json, with whitespace in the topic
// replaced by underscores. Path separators are also replaced so the topic
// text cannot escape the output directory.
func (r *ResearchResult) FileName() string {
	return fmt.Sprintf("research_%s_%s.json", slugify(r.Topic), r.Timestamp.Format("20060102_150405"))
}

// slugify converts topic text into a file-name-safe token.
func slugify(topic string) string {
	var b strings.Builder
	for _, c := range topic {
		switch {
		case unicode.IsSpace(c):
			b.WriteRune('_')
		case c == '/' || c == '\\':
			b.WriteRune('_')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
