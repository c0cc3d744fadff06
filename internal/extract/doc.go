// Package extract fetches web pages and extracts their readable text.
//
// The extractor validates the URL before any network activity, performs a
// single bounded HTTP GET with browser-like headers, and reduces the HTML
// response to whitespace-normalized visible text with script and style
// content removed. Readability-based article extraction is preferred when it
// yields usable content; otherwise the whole-document text is used.
//
// This step is stateless aside from the network call: the same response body
// always produces the same text.
package extract
