package cli

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/agent"
	"github.com/notelab/notelab-cli/internal/api"
	"github.com/notelab/notelab-cli/internal/auth"
	"github.com/notelab/notelab-cli/internal/config"
	"github.com/notelab/notelab-cli/internal/gamification"
	"github.com/notelab/notelab-cli/internal/github"
	"github.com/notelab/notelab-cli/internal/notebook"
	"github.com/notelab/notelab-cli/internal/store"
	"github.com/notelab/notelab-cli/internal/wellness"
)

// app wires the configuration, the API client, and the services a command
// needs. One app is built per command invocation.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	client  *api.Client
	history *store.Store // nil when local history is disabled or unavailable
}

// newApp loads configuration, validates it, and builds the backend client.
// The local history store is best-effort: a failure to open it degrades to
// no persistence rather than failing the command.
func newApp(ctx context.Context, flags *Flags) (*app, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL:        cfg.Server.URL,
		Token:          cfg.Server.Token,
		Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		RequestsPerSec: cfg.Server.RequestsPerSec,
		Burst:          cfg.Server.Burst,
		RetryAttempts:  cfg.Server.RetryAttempts,
		RetryBackoff:   time.Duration(cfg.Server.RetryBackoffMS) * time.Millisecond,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, client: client}

	if cfg.History.Enabled == nil || *cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			path = config.DefaultHistoryPath()
		}
		history, err := store.Open(store.Options{Path: path})
		if err != nil {
			logger.WithError(err).Warn("Local chat history unavailable")
		} else {
			a.history = history
		}
	}

	return a, nil
}

// Close releases the app's local resources.
func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.WithError(err).Debug("Failed to close history store")
		}
	}
}

func (a *app) githubService() *github.Service {
	return github.NewService(a.client, a.logger, time.Duration(a.cfg.Server.StatusCacheSec)*time.Second)
}

// browser builds the GitHub browser wired to the notebook service, so a
// disconnect marks GitHub-backed sources stale.
func (a *app) browser() *github.Browser {
	return github.NewBrowser(a.githubService(), a.logger, a.notebooks(), a.cfg.GitHub.RepoType, a.cfg.GitHub.RepoSort)
}

func (a *app) notebooks() *notebook.Service {
	return notebook.NewService(a.client, a.logger)
}

func (a *app) wellnessChat() *wellness.Chat {
	var recorder wellness.Recorder
	if a.history != nil {
		recorder = a.history
	}
	return wellness.NewChat(a.client, a.logger, nil, recorder, "wellness")
}

func (a *app) agents() *agent.Service {
	return agent.NewService(a.client, a.logger)
}

func (a *app) accounts() *auth.Service {
	return auth.NewService(a.client, a.logger)
}

func (a *app) game() *gamification.Service {
	return gamification.NewService(a.client, a.logger)
}
