package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader(t *testing.T) {
	yaml := `
server:
  url: https://api.notelab.dev
  token: secret
github:
  repo_type: owner
`
	cfg, err := LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, "https://api.notelab.dev", cfg.Server.URL)
	assert.Equal(t, "secret", cfg.Server.Token)
	assert.Equal(t, "owner", cfg.GitHub.RepoType)

	// Defaults applied
	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "updated", cfg.GitHub.RepoSort)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NotNil(t, cfg.History.Enabled)
	assert.True(t, *cfg.History.Enabled)
	assert.NotEmpty(t, cfg.History.Path)
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	yaml := `
server:
  url: https://api.notelab.dev
  tokn: oops
`
	_, err := LoadFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromReader_EmptyFile(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "https://env.notelab.dev")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "https://env.notelab.dev", cfg.Server.URL)
	assert.Equal(t, "env-token", cfg.Server.Token)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("server:\n  url: https://api.notelab.dev\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingURL(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServerURLMissing))
}

func TestValidate_BadScheme(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Server.URL = "ftp://api.notelab.dev"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServerURLInvalid))
}

func TestValidate_BadRepoType(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Server.URL = "https://api.notelab.dev"
	cfg.GitHub.RepoType = "starred"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRepoType))
}

func TestValidate_BadRepoSort(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Server.URL = "https://api.notelab.dev"
	cfg.GitHub.RepoSort = "stars"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRepoSort))
}
