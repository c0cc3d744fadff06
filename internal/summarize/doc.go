// Package summarize turns a single web page into a three-point summary.
//
// It composes the extract and llm packages: fetch and reduce the page to
// readable text, then ask the model for the main points. Errors from either
// stage are returned wrapped with the page URL so batch callers can report
// which source failed.
package summarize
