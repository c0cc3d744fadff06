package extract

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is returned when the input is not an absolute http(s) URL
// with a host. The check runs before any network activity, so a malformed
// URL never produces a request.
var ErrInvalidURL = errors.New("invalid URL: must be absolute with scheme and host")

// FetchError describes a failure to retrieve a page: a transport error, a
// timeout, or a non-success HTTP status. It always names the affected URL so
// batch callers can report which source failed.
type FetchError struct {
	// URL is the page that could not be fetched.
	URL string

	// StatusCode is the HTTP status, or 0 when the request itself failed.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
