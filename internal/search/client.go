package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/topicscan/topicscan/internal/model"
)

const (
	// defaultEndpoint is the Custom Search JSON API endpoint.
	defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

	// defaultTimeout bounds each search request.
	defaultTimeout = 10 * time.Second

	// maxResultsPerRequest is the API's per-request ceiling on num.
	maxResultsPerRequest = 10

	// verifyQuery is the probe query used by Verify. Any query works; "test"
	// keeps the probe obvious in quota dashboards.
	verifyQuery = "test"
)

// response mirrors the slice of the Custom Search JSON response we consume.
type response struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

// Client searches the web through the Google Custom Search JSON API.
//
// Design decision: We take an *http.Client rather than constructing one
// internally so tests can point the client at httptest servers, and the
// endpoint is overridable for the same reason.
type Client struct {
	// httpClient performs the HTTP requests.
	httpClient *http.Client

	// endpoint is the Custom Search API URL.
	endpoint string

	// apiKey is the Google API key sent as the key parameter.
	apiKey string

	// engineID is the Programmable Search Engine id sent as the cx parameter.
	engineID string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the Custom Search API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a search Client with the given credentials. A nil
// httpClient gets a default one with a bounded timeout.
func NewClient(httpClient *http.Client, apiKey, engineID string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		engineID:   engineID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search returns up to num results for query, in the API's ranking order.
// num is clamped to the API's 1..10 per-request range. A response without
// items yields an empty slice and no error.
func (c *Client) Search(ctx context.Context, query string, num int) ([]model.Source, error) {
	if num < 1 {
		num = 1
	}
	if num > maxResultsPerRequest {
		num = maxResultsPerRequest
	}

	body, err := c.get(ctx, query, num)
	if err != nil {
		return nil, err
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("decode response: %w", err)}
	}

	sources := make([]model.Source, 0, len(resp.Items))
	for _, item := range resp.Items {
		sources = append(sources, model.Source{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Origin:  item.DisplayLink,
		})
	}
	return sources, nil
}

// Verify probes the API with a one-result query and returns the HTTP status
// code it observed. A nil error means the credentials are accepted; a
// *SearchError with the status code means they were rejected or the API is
// unreachable (status 0).
func (c *Client) Verify(ctx context.Context) (int, error) {
	req, err := c.newRequest(ctx, verifyQuery, 1)
	if err != nil {
		return 0, &SearchError{Query: verifyQuery, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &SearchError{Query: verifyQuery, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, &SearchError{Query: verifyQuery, StatusCode: resp.StatusCode}
	}
	return resp.StatusCode, nil
}

// get performs the search request and returns the raw response body.
func (c *Client) get(ctx context.Context, query string, num int) ([]byte, error) {
	req, err := c.newRequest(ctx, query, num)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Query: query, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	return body, nil
}

// newRequest builds the GET request with credentials and query parameters.
func (c *Client) newRequest(ctx context.Context, query string, num int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(num))
	req.URL.RawQuery = q.Encode()

	return req, nil
}
