package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Credentials holds the API credentials for the external services.
// It is assembled exactly once at startup by LoadCredentials and passed into
// component constructors; nothing else in the program touches the
// environment.
type Credentials struct {
	// GroqAPIKey authenticates against the Groq completion API.
	GroqAPIKey string `envconfig:"GROQ_API_KEY"`

	// SearchAPIKey authenticates against the Google Custom Search API.
	SearchAPIKey string `envconfig:"GOOGLE_SEARCH_API_KEY"`

	// SearchEngineID identifies the Custom Search Engine to query.
	SearchEngineID string `envconfig:"GOOGLE_SEARCH_ENGINE_ID"`
}

// LoadCredentials reads credentials from the environment.
// A .env file in the current directory is loaded first when present; real
// environment variables take precedence over .env entries. A missing .env
// file is not an error.
func LoadCredentials() (Credentials, error) {
	// godotenv.Load never overwrites variables already set in the
	// environment, which gives the precedence order we want.
	_ = godotenv.Load()

	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// RequireSummarizer validates that the completion API credential is present.
// Called before the summarize pipeline; absence is a fatal configuration
// error, not a per-call error.
func (c Credentials) RequireSummarizer() error {
	if c.GroqAPIKey == "" {
		return ErrMissingGroqAPIKey
	}
	return nil
}

// RequireSearch validates that both search credentials are present.
func (c Credentials) RequireSearch() error {
	if c.SearchAPIKey == "" {
		return ErrMissingSearchAPIKey
	}
	if c.SearchEngineID == "" {
		return ErrMissingSearchEngineID
	}
	return nil
}
