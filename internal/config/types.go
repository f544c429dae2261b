package config

// Config represents the complete notelab client configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GitHub  GitHubConfig  `yaml:"github,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// ServerConfig defines how to reach the notelab backend
type ServerConfig struct {
	URL            string  `yaml:"url"`                         // Backend base URL
	Token          string  `yaml:"token,omitempty"`             // Bearer token; env override preferred
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`   // Per-request timeout (default: 30)
	RequestsPerSec float64 `yaml:"requests_per_sec,omitempty"`  // Client-side rate limit (default: 5)
	Burst          int     `yaml:"burst,omitempty"`             // Rate limiter burst (default: 10)
	RetryAttempts  int     `yaml:"retry_attempts,omitempty"`    // Transient failure retries (default: 3)
	RetryBackoffMS int     `yaml:"retry_backoff_ms,omitempty"`  // Initial retry backoff (default: 500)
	StatusCacheSec int     `yaml:"status_cache_sec,omitempty"`  // /github/status cache TTL (default: 30)
}

// GitHubConfig contains defaults for repository listing
type GitHubConfig struct {
	RepoType string `yaml:"repo_type,omitempty"` // all, owner, member (default: all)
	RepoSort string `yaml:"repo_sort,omitempty"` // updated, created, pushed, full_name (default: updated)
}

// HistoryConfig controls local chat history persistence
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // Default: true
	Path    string `yaml:"path,omitempty"`    // Default: ~/.config/notelab/history.db
}

// LogConfig controls logging behavior
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error (default: info)
}
