package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
	"github.com/topicscan/topicscan/internal/database"
	"github.com/topicscan/topicscan/internal/pipeline"
)

// TestRunResearchEndToEnd drives the full research flow against stub
// search, page, and completion servers, then checks the console report,
// the saved result file, and the history record.
func TestRunResearchEndToEnd(t *testing.T) {
	t.Parallel()

	article := "<html><head><title>Grid Storage</title></head><body><article><p>" +
		strings.Repeat("Battery storage capacity grew again this year. ", 20) +
		"</p></article></body></html>"

	pageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, article)
	}))
	defer pageSrv.Close()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items": [
			{"title": "Grid Storage Trends", "link": "%s/a", "snippet": "Storage grew.", "displayLink": "example.com"},
			{"title": "Recycling Outlook", "link": "%s/b", "snippet": "Recycling rates.", "displayLink": "example.org"}
		]}`, pageSrv.URL, pageSrv.URL)
	}))
	defer searchSrv.Close()

	// The pipeline runs sequentially, so the consolidation request is always
	// the last one.
	var completions atomic.Int32
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := completions.Add(1)
		content := fmt.Sprintf("1. Point one from source %d.", n)
		if n > 2 {
			content = "Final Summary:\n1. Overview: storage and recycling are growing."
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices": [{"message": {"role": "assistant", "content": %q}}]}`, content)
	}))
	defer llmSrv.Close()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.SearchEndpoint = searchSrv.URL
	cfg.GroqBaseURL = llmSrv.URL + "/v1"
	cfg.MaxSources = 2
	cfg.ResultDir = dir
	cfg.DBDir = dir

	creds := config.Credentials{
		GroqAPIKey:     "test-groq-key",
		SearchAPIKey:   "test-search-key",
		SearchEngineID: "test-engine",
	}

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := runResearch(context.Background(), cmd, cfg, creds, "battery recycling", logger); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		`Researching "battery recycling" (up to 2 sources)...`,
		"[1/2] Summarizing: Grid Storage Trends",
		"[2/2] Summarizing: Recycling Outlook",
		"Research Results: battery recycling",
		"Overview: storage and recycling are growing.",
		"Sources Processed: 2/2",
		"Results saved to:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q\ngot:\n%s", want, output)
		}
	}

	// Result file saved to the configured directory.
	matches, err := filepath.Glob(filepath.Join(dir, "research_battery_recycling_*.json"))
	if err != nil || len(matches) != 1 {
		t.Errorf("expected one result file, got %v (err %v)", matches, err)
	}

	// Run recorded in history.
	db, err := database.Open(dir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("expected history database to exist: %v", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	if runs[0].Topic != "battery recycling" || runs[0].Processed != 2 {
		t.Errorf("unexpected run metadata: %+v", runs[0])
	}
}

// TestRunResearchNoResults verifies an empty search aborts the run without
// writing a result file.
func TestRunResearchNoResults(t *testing.T) {
	t.Parallel()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer searchSrv.Close()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.SearchEndpoint = searchSrv.URL
	cfg.GroqBaseURL = "http://127.0.0.1:0/v1"
	cfg.ResultDir = dir
	cfg.DBDir = dir

	creds := config.Credentials{
		GroqAPIKey:     "test-groq-key",
		SearchAPIKey:   "test-search-key",
		SearchEngineID: "test-engine",
	}

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := runResearch(context.Background(), cmd, cfg, creds, "obscure nothing", logger)
	if !errors.Is(err, pipeline.ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}

	matches, globErr := filepath.Glob(filepath.Join(dir, "research_*.json"))
	if globErr != nil {
		t.Fatalf("glob failed: %v", globErr)
	}
	if len(matches) != 0 {
		t.Errorf("expected no result file, got %v", matches)
	}
}
