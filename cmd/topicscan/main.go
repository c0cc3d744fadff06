// Package main provides the entry point for the topicscan CLI.
//
// topicscan summarizes web pages and researches topics by combining web
// search with AI summarization.
//
// Usage:
//
//	topicscan summarize <url>
//	topicscan research <topic>
//
// See --help for all available options.
package main

// main is the entry point for topicscan.
func main() {
	Execute()
}
