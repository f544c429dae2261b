// Package config loads and validates the notelab client configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation errors
var (
	ErrServerURLMissing = errors.New("server.url is required")
	ErrServerURLInvalid = errors.New("server.url must be an absolute http(s) URL")
	ErrInvalidRepoType  = errors.New("github.repo_type must be one of: all, owner, member")
	ErrInvalidRepoSort  = errors.New("github.repo_sort must be one of: updated, created, pushed, full_name")
)

// Environment variables that override file values.
const (
	EnvServerURL = "NOTELAB_SERVER_URL"
	EnvToken     = "NOTELAB_TOKEN"
)

// Load reads and parses a configuration file from the given path.
// A missing file is not an error: env variables alone can configure the client.
func Load(path string) (*Config, error) {
	file, err := os.Open(path) //#nosec G304 -- Path is user-provided config file
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			applyDefaults(cfg)
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromReader parses configuration from an io.Reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	config := &Config{}

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true) // Strict parsing - fail on unknown fields

	if err := decoder.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file is a valid config
			applyDefaults(config)
			return config, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(config)
	return config, nil
}

// DefaultPath returns the default config file path
// ~/.config/notelab/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/notelab/config.yaml"
	}
	return filepath.Join(home, ".config", "notelab", "config.yaml")
}

// DefaultHistoryPath returns the default local history database path
// ~/.config/notelab/history.db
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/notelab/history.db"
	}
	return filepath.Join(home, ".config", "notelab", "history.db")
}

// applyDefaults sets default values for optional fields
func applyDefaults(config *Config) {
	if config.Server.TimeoutSeconds <= 0 {
		config.Server.TimeoutSeconds = 30
	}
	if config.Server.RequestsPerSec <= 0 {
		config.Server.RequestsPerSec = 5
	}
	if config.Server.Burst <= 0 {
		config.Server.Burst = 10
	}
	if config.Server.RetryAttempts <= 0 {
		config.Server.RetryAttempts = 3
	}
	if config.Server.RetryBackoffMS <= 0 {
		config.Server.RetryBackoffMS = 500
	}
	if config.Server.StatusCacheSec <= 0 {
		config.Server.StatusCacheSec = 30
	}
	if config.GitHub.RepoType == "" {
		config.GitHub.RepoType = "all"
	}
	if config.GitHub.RepoSort == "" {
		config.GitHub.RepoSort = "updated"
	}
	if config.History.Enabled == nil {
		config.History.Enabled = boolPtr(true)
	}
	if config.History.Path == "" {
		config.History.Path = DefaultHistoryPath()
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}

// applyEnvOverrides lets environment variables take precedence over file values
func applyEnvOverrides(config *Config) {
	if v := os.Getenv(EnvServerURL); v != "" {
		config.Server.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		config.Server.Token = v
	}
}

// Validate checks the configuration for semantic errors
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return ErrServerURLMissing
	}

	parsed, err := url.Parse(c.Server.URL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrServerURLInvalid, c.Server.URL)
	}

	switch c.GitHub.RepoType {
	case "all", "owner", "member":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidRepoType, c.GitHub.RepoType)
	}

	switch c.GitHub.RepoSort {
	case "updated", "created", "pushed", "full_name":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidRepoSort, c.GitHub.RepoSort)
	}

	return nil
}

func boolPtr(b bool) *bool { return &b }
