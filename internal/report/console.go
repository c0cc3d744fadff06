package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/topicscan/topicscan/internal/llm"
	"github.com/topicscan/topicscan/internal/model"
)

// panelWidth is the width of section rules in console output.
const panelWidth = 50

// ConsoleWriter renders results for interactive terminal use with colored
// section panels.
//
// Design decision: The writer takes its io.Writer at construction instead of
// printing to a package-level stdout. Commands inject os.Stdout; tests inject
// buffers and assert on the rendered text.
type ConsoleWriter struct {
	baseWriter

	// showThink keeps the model's thought process in the consolidated
	// summary instead of cutting to the final answer.
	showThink bool

	header  *color.Color
	section *color.Color
	link    *color.Color
	warn    *color.Color
	stat    *color.Color
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithShowThink keeps the model's reasoning in the output.
func WithShowThink(show bool) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.showThink = show
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		header:     color.New(color.FgBlue, color.Bold),
		section:    color.New(color.FgCyan, color.Bold),
		link:       color.New(color.FgBlue, color.Underline),
		warn:       color.New(color.FgYellow),
		stat:       color.New(color.FgCyan),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the research result: consolidated summary first, then each
// source with its summary, failures, and run statistics.
func (w *ConsoleWriter) Write(result *model.ResearchResult) (int, error) {
	var total int

	n, err := w.writeHeader(result)
	total += n
	if err != nil {
		return total, err
	}

	n, err = w.writeConsolidatedSummary(result)
	total += n
	if err != nil {
		return total, err
	}

	n, err = w.writeSources(result)
	total += n
	if err != nil {
		return total, err
	}

	n, err = w.writeFailures(result)
	total += n
	if err != nil {
		return total, err
	}

	n, err = w.writeStats(result)
	total += n
	return total, err
}

// WritePageSummary renders a single-page summary, used by the summarize
// command which has no surrounding research run.
func (w *ConsoleWriter) WritePageSummary(title, url, summary string) (int, error) {
	if !w.showThink {
		summary = llm.StripReasoning(summary)
	}

	var total int
	n, _ := w.header.Fprintf(w.output, "\nSummary: %s\n", title)
	total += n
	n, _ = w.link.Fprintln(w.output, url)
	total += n
	n, err := fmt.Fprintf(w.output, "%s\n\n%s\n%s\n", rule(), summary, rule())
	total += n
	return total, err
}

// writeHeader renders the run title.
func (w *ConsoleWriter) writeHeader(result *model.ResearchResult) (int, error) {
	var total int
	n, _ := w.header.Fprintf(w.output, "\nResearch Results: %s\n", result.Topic)
	total += n
	n, err := fmt.Fprintf(w.output, "%s\n\n", rule())
	total += n
	return total, err
}

// writeConsolidatedSummary renders the combined report panel.
func (w *ConsoleWriter) writeConsolidatedSummary(result *model.ResearchResult) (int, error) {
	summary := result.ConsolidatedSummary
	if !w.showThink {
		summary = llm.ExtractFinalSummary(summary)
	}
	if summary == "" {
		summary = "No consolidated summary was generated."
	}

	var total int
	n, _ := w.section.Fprintln(w.output, "Consolidated Summary")
	total += n
	n, err := fmt.Fprintf(w.output, "%s\n%s\n\n", rule(), summary)
	total += n
	return total, err
}

// writeSources renders each source with its individual summary.
func (w *ConsoleWriter) writeSources(result *model.ResearchResult) (int, error) {
	var total int

	n, _ := w.section.Fprintln(w.output, "Sources and Individual Summaries")
	total += n
	n, _ = fmt.Fprintf(w.output, "%s\n", rule())
	total += n

	for i, s := range result.Sources {
		n, _ = w.header.Fprintf(w.output, "\nSource %d: %s\n", i+1, s.Title)
		total += n
		n, _ = w.link.Fprintln(w.output, s.URL)
		total += n
		n, _ = fmt.Fprintf(w.output, "%s\n", llm.StripReasoning(s.Summary))
		total += n
	}

	n, err := fmt.Fprintln(w.output)
	total += n
	return total, err
}

// writeFailures renders sources that could not be processed.
func (w *ConsoleWriter) writeFailures(result *model.ResearchResult) (int, error) {
	if result.FailureCount() == 0 {
		return 0, nil
	}

	var total int
	n, _ := w.warn.Fprintf(w.output, "Failed Sources (%d)\n", result.FailureCount())
	total += n
	for _, f := range result.Failures {
		n, _ = w.warn.Fprintf(w.output, "  %s: %s\n", f.URL, f.Reason)
		total += n
	}
	n, err := fmt.Fprintln(w.output)
	total += n
	return total, err
}

// writeStats renders the run statistics footer.
func (w *ConsoleWriter) writeStats(result *model.ResearchResult) (int, error) {
	var total int
	n, _ := w.section.Fprintln(w.output, "Research Statistics:")
	total += n
	n, _ = w.stat.Fprintf(w.output, "  Processing Time: %.2f seconds\n", result.Elapsed.Seconds())
	total += n
	n, err := w.stat.Fprintf(w.output, "  Sources Processed: %d/%d\n", result.Processed(), result.Requested)
	total += n
	return total, err
}

// rule returns the horizontal separator used between sections.
func rule() string {
	return strings.Repeat("=", panelWidth)
}
