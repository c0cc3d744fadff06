package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/topicscan/topicscan/internal/llm"
	"github.com/topicscan/topicscan/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// showThink keeps the model's thought process in the consolidated
	// summary instead of cutting to the final answer.
	showThink bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownShowThink keeps the model's reasoning in the output.
func WithMarkdownShowThink(show bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.showThink = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ResearchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeConsolidatedSummary(md, result)
	w.writeSources(md, result)
	w.writeFailures(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ResearchResult) {
	md.H1("Research Report: " + result.Topic)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Topic", result.Topic},
			{"Date", result.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Sources Processed", fmt.Sprintf("%d/%d", result.Processed(), result.Requested)},
			{"Failed Sources", strconv.Itoa(result.FailureCount())},
			{"Processing Time", fmt.Sprintf("%.2fs", result.Elapsed.Seconds())},
		},
	})
	md.PlainText("")
}

// writeConsolidatedSummary writes the combined report section.
func (w *MarkdownWriter) writeConsolidatedSummary(md *markdown.Markdown, result *model.ResearchResult) {
	md.H2("Consolidated Summary")
	md.PlainText("")

	summary := result.ConsolidatedSummary
	if !w.showThink {
		summary = llm.ExtractFinalSummary(summary)
	}
	if summary == "" {
		summary = "No consolidated summary was generated."
	}

	md.PlainText(summary)
	md.PlainText("")
}

// writeSources writes each source with its individual summary.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown, result *model.ResearchResult) {
	md.H2("Sources and Individual Summaries")
	md.PlainText("")

	if result.Processed() == 0 {
		md.PlainText("No sources could be summarized.")
		md.PlainText("")
		return
	}

	for i, s := range result.Sources {
		md.H3(fmt.Sprintf("Source %d: %s", i+1, s.Title))
		md.PlainText(markdown.Link(s.URL, s.URL))
		md.PlainText("")
		md.PlainText(llm.StripReasoning(s.Summary))
		md.PlainText("")
	}
}

// writeFailures writes the table of sources that could not be processed.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, result *model.ResearchResult) {
	if result.FailureCount() == 0 {
		return
	}

	md.H2("Failed Sources")
	md.PlainText("")

	rows := make([][]string, len(result.Failures))
	for i, f := range result.Failures {
		rows[i] = []string{f.URL, truncateString(f.Reason, 80)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")

	md.Warningf("%d source(s) could not be processed and are missing from the summary.", result.FailureCount())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by topicscan*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
