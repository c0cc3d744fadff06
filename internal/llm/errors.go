package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when the API responds successfully but with
// no choices or an empty message.
var ErrEmptyCompletion = errors.New("completion contained no content")

// ErrEmptyInput is returned when there is no text to summarize.
var ErrEmptyInput = errors.New("no text to summarize")

// SummarizationError describes a failed completion request. Op names the
// operation ("summarize" or "consolidate") and Model the model that was
// asked.
type SummarizationError struct {
	// Op is the operation that failed.
	Op string

	// Model is the model the request named.
	Model string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SummarizationError) Error() string {
	return fmt.Sprintf("%s with %s: %v", e.Op, e.Model, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *SummarizationError) Unwrap() error {
	return e.Err
}
