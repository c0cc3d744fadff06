package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

// TestNewResearchResult verifies the initial state of a research result.
func TestNewResearchResult(t *testing.T) {
	t.Parallel()

	r := NewResearchResult("battery recycling", 3)

	if r.Topic != "battery recycling" {
		t.Errorf("expected topic 'battery recycling', got %q", r.Topic)
	}
	if r.Requested != 3 {
		t.Errorf("expected requested 3, got %d", r.Requested)
	}
	if r.Sources == nil || len(r.Sources) != 0 {
		t.Errorf("expected empty non-nil sources, got %v", r.Sources)
	}
	if r.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

// TestResearchResultAccumulation verifies that summaries and failures are
// appended in call order and counted correctly.
func TestResearchResultAccumulation(t *testing.T) {
	t.Parallel()

	r := NewResearchResult("solar power", 3)

	r.AddSummary(Source{Title: "first", URL: "https://a.example/1"}, "summary one")
	r.AddFailure("https://b.example/2", errors.New("fetch failed"))
	r.AddSummary(Source{Title: "third", URL: "https://c.example/3"}, "summary three")

	if r.Processed() != 2 {
		t.Errorf("expected 2 processed, got %d", r.Processed())
	}
	if r.FailureCount() != 1 {
		t.Errorf("expected 1 failure, got %d", r.FailureCount())
	}
	if r.Sources[0].Title != "first" || r.Sources[1].Title != "third" {
		t.Errorf("expected search order preserved, got %q then %q",
			r.Sources[0].Title, r.Sources[1].Title)
	}
	if r.Failures[0].Reason != "fetch failed" {
		t.Errorf("expected failure reason 'fetch failed', got %q", r.Failures[0].Reason)
	}
}

// TestResearchResultRoundTrip verifies that serializing a result to JSON and
// reading it back reproduces an equal structure.
func TestResearchResultRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	original := &ResearchResult{
		Topic:     "battery recycling",
		Timestamp: ts,
		Sources: []SourceSummary{
			{
				Source:  Source{Title: "A", URL: "https://a.example", Snippet: "s1", Origin: "a.example"},
				Summary: "first summary",
			},
			{
				Source:  Source{Title: "B", URL: "https://b.example", Snippet: "s2", Origin: "b.example"},
				Summary: "second summary",
			},
		},
		Failures:            []SourceFailure{{URL: "https://c.example", Reason: "timeout"}},
		ConsolidatedSummary: "combined report",
		Requested:           3,
		Elapsed:             2 * time.Second,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded ResearchResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Errorf("round trip mismatch:\noriginal: %+v\ndecoded:  %+v", original, &decoded)
	}
}

// TestFileName verifies the deterministic result file naming scheme.
func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "spaces become underscores",
			topic: "battery recycling",
			want:  "research_battery_recycling_20250314_092653.json",
		},
		{
			name:  "single word unchanged",
			topic: "photosynthesis",
			want:  "research_photosynthesis_20250314_092653.json",
		},
		{
			name:  "path separators replaced",
			topic: "ac/dc history",
			want:  "research_ac_dc_history_20250314_092653.json",
		},
	}

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &ResearchResult{Topic: tt.topic, Timestamp: ts}
			if got := r.FileName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
