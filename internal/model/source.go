package model

// Source is one web page returned by the search step.
// It is immutable once created; the pipeline never modifies a Source after
// mapping it from a raw search result.
type Source struct {
	// Title is the page title as reported by the search API.
	Title string `json:"title"`

	// URL is the full link to the page.
	URL string `json:"url"`

	// Snippet is the short description returned by the search API.
	Snippet string `json:"snippet"`

	// Origin is the display domain of the page (e.g. "example.com").
	Origin string `json:"origin"`
}

// SourceSummary is a Source that was successfully fetched and summarized.
// Sources whose fetch or summarization failed are never represented as a
// SourceSummary; they are recorded as a SourceFailure instead.
type SourceSummary struct {
	Source

	// Summary is the generated summary text for this source, verbatim as
	// returned by the completion API.
	Summary string `json:"summary"`
}

// SourceFailure records a source that could not be processed during topic
// research. The pipeline continues past failures; this type exists so the
// caller can report how many sources failed and why, rather than the
// information living only in logs.
type SourceFailure struct {
	// URL is the link of the source that failed.
	URL string `json:"url"`

	// Reason is the error message describing why processing failed.
	Reason string `json:"reason"`
}
