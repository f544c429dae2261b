package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	"github.com/notelab/notelab-cli/internal/cache"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// statusCacheKey is the TTL cache key for /github/status lookups. Repos,
// trees and files are never cached: each view re-fetches.
const statusCacheKey = "github/status"

// API defines the operations the browser needs from the /github/* surface.
type API interface {
	// Status fetches the current connection record.
	Status(ctx context.Context) (*Connection, error)

	// Connect exchanges a personal access token for a connection record.
	Connect(ctx context.Context, token string) (*Connection, error)

	// Disconnect unlinks the GitHub account.
	Disconnect(ctx context.Context) error

	// ListRepos lists accessible repositories. repoType and sort are passed
	// through to the backend verbatim.
	ListRepos(ctx context.Context, repoType, sort string) ([]Repo, error)

	// Tree fetches the full flattened tree for a repository.
	Tree(ctx context.Context, owner, repo string) ([]TreeItem, error)

	// File fetches one file's content by path.
	File(ctx context.Context, owner, repo, path string) (*FileContent, error)

	// Readme fetches the rendered repository readme.
	Readme(ctx context.Context, owner, repo string) (string, error)

	// SearchCode runs a backend code search. owner/repo scope the search
	// when non-empty.
	SearchCode(ctx context.Context, query, owner, repo string) ([]SearchResult, error)

	// CreateIssue opens an issue. Fire-and-forget: not modeled as owned state.
	CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error)

	// Analyze requests an AI analysis of the repository.
	Analyze(ctx context.Context, owner, repo string, req AnalyzeRequest) (*Analysis, error)
}

// Service implements API over the backend client.
type Service struct {
	client      *api.Client
	logger      *logrus.Logger
	statusCache *cache.TTLCache[*Connection]
}

// NewService creates the /github/* service. statusTTL bounds how long a
// successful status lookup is reused; <= 0 applies the cache default.
func NewService(client *api.Client, logger *logrus.Logger, statusTTL time.Duration) *Service {
	return &Service{
		client:      client,
		logger:      logger,
		statusCache: cache.New[*Connection](statusTTL, 1),
	}
}

// Status returns the current connection record, serving repeat lookups from
// a short-lived cache.
func (s *Service) Status(ctx context.Context) (*Connection, error) {
	return s.statusCache.GetOrLoad(statusCacheKey, func() (*Connection, error) {
		var conn Connection
		if err := s.client.Get(ctx, "/github/status", &conn); err != nil {
			return nil, appErrors.WrapWithContext(err, "fetch GitHub status")
		}
		return &conn, nil
	})
}

// Connect exchanges a personal access token for a connection record.
func (s *Service) Connect(ctx context.Context, token string) (*Connection, error) {
	body := map[string]string{"token": token}

	var conn Connection
	if err := s.client.Post(ctx, "/github/connect", body, &conn); err != nil {
		if api.IsUnauthorized(err) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, appErrors.WrapWithContext(err, "connect GitHub account")
	}

	s.statusCache.Set(statusCacheKey, &conn)
	s.logger.WithField("username", conn.Username).Info("GitHub account connected")

	return &conn, nil
}

// Disconnect unlinks the GitHub account and drops the cached status.
func (s *Service) Disconnect(ctx context.Context) error {
	s.statusCache.Delete(statusCacheKey)

	if err := s.client.Delete(ctx, "/github/connection", nil); err != nil {
		return appErrors.WrapWithContext(err, "disconnect GitHub account")
	}

	return nil
}

// ListRepos lists accessible repositories with the given backend filter and
// sort parameters.
func (s *Service) ListRepos(ctx context.Context, repoType, sort string) ([]Repo, error) {
	query := url.Values{}
	if repoType != "" {
		query.Set("type", repoType)
	}
	if sort != "" {
		query.Set("sort", sort)
	}

	path := "/github/repos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var repos []Repo
	if err := s.client.Get(ctx, path, &repos); err != nil {
		return nil, appErrors.WrapWithContext(err, "list repositories")
	}

	return repos, nil
}

// Tree fetches the full flattened tree for a repository.
func (s *Service) Tree(ctx context.Context, owner, repo string) ([]TreeItem, error) {
	path := fmt.Sprintf("/github/repos/%s/%s/tree", url.PathEscape(owner), url.PathEscape(repo))

	var items []TreeItem
	if err := s.client.Get(ctx, path, &items); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", appErrors.ErrRepoNotFound, owner, repo)
		}
		return nil, appErrors.WrapWithContext(err, "fetch repository tree")
	}

	return items, nil
}

// File fetches one file's content by path.
func (s *Service) File(ctx context.Context, owner, repo, filePath string) (*FileContent, error) {
	target := fmt.Sprintf("/github/repos/%s/%s/contents/%s",
		url.PathEscape(owner), url.PathEscape(repo), escapePath(filePath))

	var file FileContent
	if err := s.client.Get(ctx, target, &file); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrFileNotFound, filePath)
		}
		return nil, appErrors.WrapWithContext(err, "fetch file content")
	}

	return &file, nil
}

// Readme fetches the repository readme content.
func (s *Service) Readme(ctx context.Context, owner, repo string) (string, error) {
	path := fmt.Sprintf("/github/repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(repo))

	var out struct {
		Content string `json:"content"`
	}
	if err := s.client.Get(ctx, path, &out); err != nil {
		if api.IsNotFound(err) {
			return "", fmt.Errorf("%w: readme", appErrors.ErrFileNotFound)
		}
		return "", appErrors.WrapWithContext(err, "fetch readme")
	}

	return out.Content, nil
}

// SearchCode runs a backend code search, scoped to owner/repo when provided.
func (s *Service) SearchCode(ctx context.Context, query, owner, repo string) ([]SearchResult, error) {
	body := map[string]string{"query": query}
	if owner != "" && repo != "" {
		body["owner"] = owner
		body["repo"] = repo
	}

	var out struct {
		Results []SearchResult `json:"results"`
	}
	if err := s.client.Post(ctx, "/github/search", body, &out); err != nil {
		return nil, appErrors.WrapWithContext(err, "search code")
	}

	return out.Results, nil
}

// CreateIssue opens an issue on the given repository.
func (s *Service) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.EmptyFieldError("issue title")
	}

	path := fmt.Sprintf("/github/repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))

	var issue Issue
	if err := s.client.Post(ctx, path, req, &issue); err != nil {
		return nil, appErrors.WrapWithContext(err, "create issue")
	}

	return &issue, nil
}

// Analyze requests an AI analysis of the repository. A successful response
// may still carry AIAnalysisAvailable == false; callers must treat that as
// a degraded success, not a failure.
func (s *Service) Analyze(ctx context.Context, owner, repo string, req AnalyzeRequest) (*Analysis, error) {
	path := fmt.Sprintf("/github/repos/%s/%s/analyze", url.PathEscape(owner), url.PathEscape(repo))

	var analysis Analysis
	if err := s.client.Post(ctx, path, req, &analysis); err != nil {
		return nil, appErrors.WrapWithContext(err, "analyze repository")
	}

	return &analysis, nil
}

// escapePath escapes each segment of a /-joined path while preserving the
// separators themselves.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
