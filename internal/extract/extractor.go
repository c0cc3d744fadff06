package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Default extractor settings, overridable via options.
const (
	// defaultTimeout bounds each page fetch.
	defaultTimeout = 10 * time.Second

	// defaultMaxBodySize caps the response body read. 5MB covers HTML pages
	// while preventing memory exhaustion from unexpectedly large responses.
	defaultMaxBodySize = 5 * 1024 * 1024

	// defaultUserAgent mimics a desktop browser. Many sites return a blanket
	// 403 to requests without a browser-like User-Agent.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	// minReadableChars is the threshold below which readability output is
	// considered to have missed the page content, triggering the
	// whole-document fallback.
	minReadableChars = 200
)

// Content is the extracted readable text of one page.
type Content struct {
	// URL is the page the content came from.
	URL string

	// Title is the page title, when one could be determined.
	Title string

	// Text is the whitespace-normalized visible text of the page with
	// script and style content removed.
	Text string
}

// Extractor fetches pages and reduces them to readable text.
//
// Design decision: We take an *http.Client rather than constructing one
// internally so tests can point the extractor at httptest servers and so a
// shared client's connection pool is reused across fetches.
type Extractor struct {
	// client performs the HTTP requests.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many response bytes are read.
	maxBodySize int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) {
		e.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(e *Extractor) {
		e.maxBodySize = size
	}
}

// New creates an Extractor. A nil client gets a default one with a bounded
// timeout.
func New(client *http.Client, opts ...Option) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	e := &Extractor{
		client:      client,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// It returns ErrInvalidURL (wrapped with the offending input) otherwise.
// Callers run this before any network activity.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return u, nil
}

// Extract fetches rawURL and returns its readable text.
// It fails with ErrInvalidURL before any network call for malformed input,
// and with *FetchError for transport failures or non-success statuses.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Content, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	body, err := e.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	title, text := e.parse(u, body)
	return &Content{URL: u.String(), Title: title, Text: text}, nil
}

// fetch performs the HTTP GET and returns the bounded response body.
func (e *Extractor) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	return body, nil
}

// parse reduces the HTML body to a title and visible text.
// Readability extraction is tried first; when it errors or finds less than
// minReadableChars of text (common on link-index and landing pages), the
// whole document minus script/style/noscript is used instead.
func (e *Extractor) parse(u *url.URL, body []byte) (title, text string) {
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err == nil {
		title = strings.TrimSpace(article.Title)
		text = normalizeWhitespace(article.TextContent)
		if len(text) >= minReadableChars {
			return title, text
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		// Unparseable bytes: fall back to whatever readability produced.
		return title, text
	}

	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find("script, style, noscript, iframe").Remove()
	full := normalizeWhitespace(doc.Find("body").Text())
	if full == "" {
		// Some documents have no body element; use the whole tree.
		full = normalizeWhitespace(doc.Text())
	}
	if len(full) > len(text) {
		text = full
	}
	return title, text
}

// whitespaceRe collapses runs of whitespace, including newlines left behind
// by block elements, into single spaces.
var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeWhitespace trims the text and collapses interior whitespace runs.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
