package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".topicscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file structure. All fields are optional;
// zero values leave the corresponding Config default untouched. CLI flags
// override file values.
type File struct {
	// Model is the default chat-completion model identifier.
	Model string `yaml:"model"`

	// Temperature is the default sampling temperature (0.0-1.0).
	Temperature *float64 `yaml:"temperature"`

	// MaxTokens is the default per-page summary token budget.
	MaxTokens int `yaml:"max_tokens"`

	// MaxSources is the default number of search results per research run.
	MaxSources int `yaml:"max_sources"`

	// FetchTimeout is the default page fetch timeout in Go duration syntax
	// (e.g. "10s"). Kept as a string because yaml.v3 has no native
	// time.Duration support; parsed in Apply.
	FetchTimeout string `yaml:"fetch_timeout"`

	// LLMTimeout is the default completion API timeout (e.g. "2m").
	LLMTimeout string `yaml:"llm_timeout"`

	// UserAgent overrides the User-Agent header for page fetches.
	UserAgent string `yaml:"user_agent"`

	// ResultDir is the directory research result files are written to.
	ResultDir string `yaml:"result_dir"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that matters based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply overlays the file's non-zero values onto cfg.
// Flag handling in the command layer runs after Apply, so explicitly set
// flags still win.
func (f *File) Apply(cfg *Config) {
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.Temperature != nil {
		cfg.Temperature = *f.Temperature
	}
	if f.MaxTokens > 0 {
		cfg.MaxTokens = f.MaxTokens
	}
	if f.MaxSources > 0 {
		cfg.MaxSources = f.MaxSources
	}
	if f.FetchTimeout != "" {
		if d, err := time.ParseDuration(f.FetchTimeout); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if f.LLMTimeout != "" {
		if d, err := time.ParseDuration(f.LLMTimeout); err == nil && d > 0 {
			cfg.LLMTimeout = d
		}
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.ResultDir != "" {
		cfg.ResultDir = f.ResultDir
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .topicscan in the current directory
//  3. Look for .topicscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
