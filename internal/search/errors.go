package search

import "fmt"

// SearchError describes a failed Custom Search request: a transport failure,
// a non-success HTTP status, or an undecodable response. The raw request URL
// is deliberately absent because it carries credentials.
type SearchError struct {
	// Query is the search query that failed.
	Query string

	// StatusCode is the HTTP status, or 0 when the request itself failed.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search %q: unexpected status %d", e.Query, e.StatusCode)
	}
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *SearchError) Unwrap() error {
	return e.Err
}
