package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/topicscan/topicscan/internal/model"
	"github.com/topicscan/topicscan/internal/summarize"
)

type fakeSearcher struct {
	sources []model.Source
	err     error
	gotNum  int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, num int) ([]model.Source, error) {
	f.gotNum = num
	return f.sources, f.err
}

// fakeSummarizer summarizes every URL except those listed in failing.
type fakeSummarizer struct {
	failing map[string]error
	calls   []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, rawURL string) (*summarize.Result, error) {
	f.calls = append(f.calls, rawURL)
	if err, ok := f.failing[rawURL]; ok {
		return nil, err
	}
	return &summarize.Result{URL: rawURL, Summary: "summary of " + rawURL}, nil
}

type fakeConsolidator struct {
	report       string
	err          error
	gotTopic     string
	gotSummaries []model.SourceSummary
}

func (f *fakeConsolidator) Consolidate(_ context.Context, topic string, summaries []model.SourceSummary) (string, error) {
	f.gotTopic = topic
	f.gotSummaries = summaries
	return f.report, f.err
}

func sourceFixture(n int) []model.Source {
	sources := make([]model.Source, 0, n)
	for i := 0; i < n; i++ {
		sources = append(sources, model.Source{
			Title: fmt.Sprintf("Source %d", i+1),
			URL:   fmt.Sprintf("https://example.com/%d", i+1),
		})
	}
	return sources
}

// TestSearchStep verifies candidates are stored and the request size passed
// through.
func TestSearchStep(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{sources: sourceFixture(3)}
	step := NewSearchStep(searcher, 5, nil)

	result := model.NewResearchResult("battery recycling", 5)
	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if searcher.gotNum != 5 {
		t.Errorf("expected 5 results requested, got %d", searcher.gotNum)
	}
	if len(result.Candidates) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(result.Candidates))
	}
}

// TestSearchStepNoSources verifies an empty result set aborts the run.
func TestSearchStepNoSources(t *testing.T) {
	t.Parallel()

	step := NewSearchStep(&fakeSearcher{}, 5, nil)

	err := step.Do(context.Background(), model.NewResearchResult("obscure topic", 5))
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}

// TestSearchStepError verifies search failures carry the topic.
func TestSearchStepError(t *testing.T) {
	t.Parallel()

	searchErr := errors.New("quota exceeded")
	step := NewSearchStep(&fakeSearcher{err: searchErr}, 5, nil)

	err := step.Do(context.Background(), model.NewResearchResult("some topic", 5))
	if !errors.Is(err, searchErr) {
		t.Fatalf("expected wrapped search error, got %v", err)
	}
	if !strings.Contains(err.Error(), "some topic") {
		t.Errorf("expected error to name the topic, got: %v", err)
	}
}

// TestSummarizeSourcesStep verifies every candidate is processed in order.
func TestSummarizeSourcesStep(t *testing.T) {
	t.Parallel()

	summarizer := &fakeSummarizer{}
	step := NewSummarizeSourcesStep(summarizer, nil)

	result := model.NewResearchResult("t", 3)
	result.Candidates = sourceFixture(3)

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Processed() != 3 {
		t.Fatalf("expected 3 summaries, got %d", result.Processed())
	}
	for i, s := range result.Sources {
		wantURL := fmt.Sprintf("https://example.com/%d", i+1)
		if s.URL != wantURL {
			t.Errorf("summary %d: expected %q, got %q", i, wantURL, s.URL)
		}
		if s.Title != fmt.Sprintf("Source %d", i+1) {
			t.Errorf("summary %d: search title not preserved: %q", i, s.Title)
		}
	}
}

// TestSummarizeSourcesStepContinuesOnFailure verifies one failed source does
// not stop the rest, and the failure is recorded.
func TestSummarizeSourcesStepContinuesOnFailure(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("status 403")
	summarizer := &fakeSummarizer{
		failing: map[string]error{"https://example.com/2": fetchErr},
	}
	step := NewSummarizeSourcesStep(summarizer, nil)

	result := model.NewResearchResult("t", 3)
	result.Candidates = sourceFixture(3)

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Processed() != 2 {
		t.Errorf("expected 2 summaries, got %d", result.Processed())
	}
	if result.FailureCount() != 1 {
		t.Fatalf("expected 1 failure, got %d", result.FailureCount())
	}
	if result.Failures[0].URL != "https://example.com/2" {
		t.Errorf("unexpected failed URL: %q", result.Failures[0].URL)
	}
	if !strings.Contains(result.Failures[0].Reason, "403") {
		t.Errorf("expected failure reason to carry the cause, got %q", result.Failures[0].Reason)
	}

	// Surviving summaries keep the search order with the failure removed.
	if result.Sources[0].URL != "https://example.com/1" || result.Sources[1].URL != "https://example.com/3" {
		t.Errorf("unexpected source order: %v", result.Sources)
	}

	if len(summarizer.calls) != 3 {
		t.Errorf("expected all 3 candidates attempted, got %d", len(summarizer.calls))
	}
}

// TestSummarizeSourcesStepProgress verifies the progress callback sees every
// candidate.
func TestSummarizeSourcesStepProgress(t *testing.T) {
	t.Parallel()

	var seen []int
	step := NewSummarizeSourcesStep(&fakeSummarizer{}, nil,
		WithProgress(func(index, total int, _ model.Source) {
			seen = append(seen, index)
			if total != 2 {
				t.Errorf("expected total 2, got %d", total)
			}
		}),
	)

	result := model.NewResearchResult("t", 2)
	result.Candidates = sourceFixture(2)

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("unexpected progress indexes: %v", seen)
	}
}

// TestSummarizeSourcesStepCancellation verifies cancellation stops the loop.
func TestSummarizeSourcesStepCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summarizer := &fakeSummarizer{}
	step := NewSummarizeSourcesStep(summarizer, nil)

	result := model.NewResearchResult("t", 2)
	result.Candidates = sourceFixture(2)

	if err := step.Do(ctx, result); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summarizer.calls) != 0 {
		t.Errorf("expected no sources attempted, got %d", len(summarizer.calls))
	}
}

// TestConsolidateStep verifies the consolidated report lands in the result.
func TestConsolidateStep(t *testing.T) {
	t.Parallel()

	consolidator := &fakeConsolidator{report: "Final Summary:\n1. Overview"}
	step := NewConsolidateStep(consolidator, nil)

	result := model.NewResearchResult("t", 2)
	result.AddSummary(model.Source{Title: "A", URL: "https://example.com/a"}, "sum a")
	result.AddSummary(model.Source{Title: "B", URL: "https://example.com/b"}, "sum b")

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.ConsolidatedSummary != "Final Summary:\n1. Overview" {
		t.Errorf("unexpected consolidated summary: %q", result.ConsolidatedSummary)
	}
	if len(consolidator.gotSummaries) != 2 {
		t.Errorf("expected 2 summaries passed, got %d", len(consolidator.gotSummaries))
	}
}

// TestConsolidateStepFailureDegrades verifies consolidation failure keeps the
// per-source summaries and records a diagnostic instead of failing the run.
func TestConsolidateStepFailureDegrades(t *testing.T) {
	t.Parallel()

	consolidator := &fakeConsolidator{err: errors.New("model overloaded")}
	step := NewConsolidateStep(consolidator, nil)

	result := model.NewResearchResult("t", 1)
	result.AddSummary(model.Source{Title: "A", URL: "https://example.com/a"}, "sum a")

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}

	if result.Processed() != 1 {
		t.Error("expected per-source summaries to survive")
	}
	if !strings.Contains(result.ConsolidatedSummary, "Error generating consolidated summary") {
		t.Errorf("expected diagnostic summary, got %q", result.ConsolidatedSummary)
	}
	if !strings.Contains(result.ConsolidatedSummary, "model overloaded") {
		t.Errorf("expected diagnostic to carry the cause, got %q", result.ConsolidatedSummary)
	}
}

// TestConsolidateStepAllSourcesFailed verifies consolidation still runs when
// nothing could be summarized, so the run completes with a report instead of
// an error.
func TestConsolidateStepAllSourcesFailed(t *testing.T) {
	t.Parallel()

	consolidator := &fakeConsolidator{report: "Final Summary:\nNo sources were available."}
	step := NewConsolidateStep(consolidator, nil)

	result := model.NewResearchResult("t", 2)
	result.AddFailure("https://example.com/1", errors.New("timeout"))
	result.AddFailure("https://example.com/2", errors.New("status 500"))

	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ConsolidatedSummary != consolidator.report {
		t.Errorf("unexpected summary: %q", result.ConsolidatedSummary)
	}
	if consolidator.gotTopic != "t" {
		t.Errorf("expected consolidation over the empty source list, got topic %q", consolidator.gotTopic)
	}
	if result.FailureCount() != 2 {
		t.Errorf("expected both failures preserved, got %d", result.FailureCount())
	}
}

// TestResearchPipelineEndToEnd exercises the full three-step run with one
// failing source.
func TestResearchPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{sources: sourceFixture(3)}
	summarizer := &fakeSummarizer{
		failing: map[string]error{"https://example.com/3": errors.New("unreachable")},
	}
	consolidator := &fakeConsolidator{report: "Final Summary:\n1. Overview of battery recycling"}

	p := New()
	p.AddSteps(
		NewSearchStep(searcher, 3, nil),
		NewSummarizeSourcesStep(summarizer, nil),
		NewConsolidateStep(consolidator, nil),
	)

	result := model.NewResearchResult("battery recycling", 3)
	if err := p.Execute(context.Background(), result); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Processed() != 2 {
		t.Errorf("expected 2 processed sources, got %d", result.Processed())
	}
	if result.FailureCount() != 1 {
		t.Errorf("expected 1 failure, got %d", result.FailureCount())
	}
	if !strings.Contains(result.ConsolidatedSummary, "battery recycling") {
		t.Errorf("unexpected consolidated summary: %q", result.ConsolidatedSummary)
	}
}
