// Package model defines the core data structures used throughout topicscan.
//
// This package contains the following main types:
//   - Source: A search-result-derived web page to be summarized
//   - SourceSummary: A source together with its generated summary
//   - SourceFailure: A source that could not be processed, with the reason
//   - ResearchResult: The complete result of one topic research run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (search, pipeline, report, database) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for result files and
// database storage.
package model
