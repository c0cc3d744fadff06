package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Credentials methods.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoModel is returned when the model identifier is empty.
	ErrNoModel = errors.New("no model specified: provide a model identifier")

	// ErrInvalidTemperature is returned when the temperature is outside 0.0-1.0.
	ErrInvalidTemperature = errors.New("invalid temperature: must be between 0.0 and 1.0")

	// ErrInvalidMaxTokens is returned when an output token budget is not positive.
	ErrInvalidMaxTokens = errors.New("invalid max tokens: must be positive")

	// ErrInvalidMaxInputChars is returned when the input character budget is
	// not positive. A zero budget would empty every prompt.
	ErrInvalidMaxInputChars = errors.New("invalid max input chars: must be positive")

	// ErrInvalidMaxSources is returned when the source count is not in 1-10.
	// The Custom Search API returns at most 10 results per request.
	ErrInvalidMaxSources = errors.New("invalid max sources: must be between 1 and 10")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	// A zero timeout would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrMissingGroqAPIKey is returned when GROQ_API_KEY is absent.
	// Summarization is impossible without it, so this aborts before any
	// network activity.
	ErrMissingGroqAPIKey = errors.New("missing credential: set GROQ_API_KEY in the environment or a .env file")

	// ErrMissingSearchAPIKey is returned when GOOGLE_SEARCH_API_KEY is absent.
	ErrMissingSearchAPIKey = errors.New("missing credential: set GOOGLE_SEARCH_API_KEY in the environment or a .env file")

	// ErrMissingSearchEngineID is returned when GOOGLE_SEARCH_ENGINE_ID is absent.
	ErrMissingSearchEngineID = errors.New("missing credential: set GOOGLE_SEARCH_ENGINE_ID in the environment or a .env file")
)
