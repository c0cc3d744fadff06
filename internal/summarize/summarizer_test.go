package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/topicscan/topicscan/internal/extract"
)

type fakeExtractor struct {
	content *extract.Content
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, rawURL string) (*extract.Content, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := *f.content
	if c.URL == "" {
		c.URL = rawURL
	}
	return &c, nil
}

type fakeLLM struct {
	summary  string
	err      error
	lastText string
}

func (f *fakeLLM) SummarizeText(_ context.Context, text string) (string, error) {
	f.lastText = text
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

// TestSummarize verifies the extract and summarize stages compose.
func TestSummarize(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{summary: "1. main point"}
	s := New(
		&fakeExtractor{content: &extract.Content{Title: "Article", Text: "body text"}},
		llm,
		nil,
	)

	result, err := s.Summarize(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.URL != "https://example.com/a" {
		t.Errorf("unexpected URL: %q", result.URL)
	}
	if result.Title != "Article" {
		t.Errorf("unexpected title: %q", result.Title)
	}
	if result.Summary != "1. main point" {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if llm.lastText != "body text" {
		t.Errorf("expected extracted text to reach the model, got %q", llm.lastText)
	}
}

// TestSummarizeExtractError verifies extraction failures are wrapped with
// the URL and keep their identity for errors.Is.
func TestSummarizeExtractError(t *testing.T) {
	t.Parallel()

	s := New(&fakeExtractor{err: extract.ErrInvalidURL}, &fakeLLM{}, nil)

	_, err := s.Summarize(context.Background(), "not a url")
	if !errors.Is(err, extract.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if !strings.Contains(err.Error(), "not a url") {
		t.Errorf("expected error to name the URL, got: %v", err)
	}
}

// TestSummarizeLLMError verifies model failures are wrapped with the URL.
func TestSummarizeLLMError(t *testing.T) {
	t.Parallel()

	llmErr := errors.New("rate limited")
	s := New(
		&fakeExtractor{content: &extract.Content{Text: "body"}},
		&fakeLLM{err: llmErr},
		nil,
	)

	_, err := s.Summarize(context.Background(), "https://example.com/b")
	if !errors.Is(err, llmErr) {
		t.Fatalf("expected wrapped llm error, got %v", err)
	}
	if !strings.Contains(err.Error(), "https://example.com/b") {
		t.Errorf("expected error to name the URL, got: %v", err)
	}
}
