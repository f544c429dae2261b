package github

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// SourceInvalidator is notified when the GitHub account is disconnected so
// previously imported GitHub-backed notebook sources can be marked stale.
type SourceInvalidator interface {
	InvalidateGitHubSources(ctx context.Context) error
}

// State is an immutable snapshot of the browser. Operations replace state
// wholesale; callers never mutate a snapshot.
type State struct {
	Loading      bool
	Connected    bool
	Error        string
	Connection   Connection
	Repos        []Repo
	SelectedRepo *Repo
	CurrentPath  string
	Tree         []TreeItem
}

// Browser holds the connected account, the repository list, and the selected
// repository's flattened tree, and exposes directory-scoped views over it.
//
// Every operation catches its own failure, records a human-readable message
// in the state, and leaves the rest of the state untouched. Nothing retries
// automatically; retries are caller-initiated.
//
// Concurrent calls are sequenced with a monotonic request token: when an
// older request resolves after a newer one, its result is discarded, so the
// state always reflects the last-issued call.
type Browser struct {
	mu          sync.Mutex
	api         API
	logger      *logrus.Logger
	invalidator SourceInvalidator

	// Defaults passed to LoadRepos when triggered by ConnectWithToken.
	repoType string
	repoSort string

	seq       uint64 // monotonic request token source (guarded by mu)
	repoToken uint64 // token of the latest issued repo list request
	treeToken uint64 // token of the latest issued tree request

	state State
}

// NewBrowser creates a browser over the given API. invalidator may be nil.
// repoType and repoSort are the defaults used when connecting triggers the
// initial repository load.
func NewBrowser(api API, logger *logrus.Logger, invalidator SourceInvalidator, repoType, repoSort string) *Browser {
	return &Browser{
		api:         api,
		logger:      logger,
		invalidator: invalidator,
		repoType:    repoType,
		repoSort:    repoSort,
	}
}

// State returns a snapshot of the current browser state.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Browser) snapshotLocked() State {
	snapshot := b.state
	snapshot.Repos = append([]Repo(nil), b.state.Repos...)
	snapshot.Tree = append([]TreeItem(nil), b.state.Tree...)
	if b.state.SelectedRepo != nil {
		selected := *b.state.SelectedRepo
		snapshot.SelectedRepo = &selected
	}
	return snapshot
}

// CheckStatus fetches the connection record. On failure the state becomes
// "disconnected" with an error message; the caller may simply re-invoke.
func (b *Browser) CheckStatus(ctx context.Context) {
	b.beginOp()

	conn, err := b.api.Status(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Loading = false

	if err != nil {
		b.state.Connected = false
		b.state.Connection = Connection{}
		b.state.Error = err.Error()
		return
	}

	b.state.Connected = conn.Connected
	b.state.Connection = *conn
}

// ConnectWithToken exchanges a personal access token for a connection.
// Empty or whitespace tokens are rejected before any network call. On
// success the repository list is loaded with the configured defaults.
// Returns whether the connection succeeded; the error detail is available
// in the state.
func (b *Browser) ConnectWithToken(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		b.mu.Lock()
		b.state.Error = appErrors.ErrTokenEmpty.Error()
		b.mu.Unlock()
		return false
	}

	b.beginOp()

	conn, err := b.api.Connect(ctx, token)

	b.mu.Lock()
	b.state.Loading = false
	if err != nil {
		b.state.Error = err.Error()
		b.mu.Unlock()
		return false
	}

	b.state.Connected = true
	b.state.Connection = *conn
	b.mu.Unlock()

	b.LoadRepos(ctx, b.repoType, b.repoSort)
	return true
}

// Disconnect clears the connection, repository list, selection, and tree,
// and notifies the source invalidation hook. Local state is cleared even
// when the backend call fails.
func (b *Browser) Disconnect(ctx context.Context) {
	b.beginOp()

	err := b.api.Disconnect(ctx)

	b.mu.Lock()
	b.state = State{}
	if err != nil {
		b.state.Error = err.Error()
	}
	b.mu.Unlock()

	if b.invalidator != nil {
		if err := b.invalidator.InvalidateGitHubSources(ctx); err != nil {
			b.logger.WithError(err).Warn("Failed to invalidate GitHub-backed sources")
		}
	}
}

// LoadRepos replaces the repository list. No-op when not connected: no
// network call is made and the list is left unchanged. repoType and sort
// are passed through to the backend verbatim.
func (b *Browser) LoadRepos(ctx context.Context, repoType, sort string) {
	b.mu.Lock()
	if !b.state.Connected {
		b.mu.Unlock()
		return
	}
	token := b.nextTokenLocked()
	b.repoToken = token
	b.state.Loading = true
	b.state.Error = ""
	b.mu.Unlock()

	repos, err := b.api.ListRepos(ctx, repoType, sort)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.repoToken != token {
		// A newer request was issued while this one was in flight.
		return
	}
	b.state.Loading = false

	if err != nil {
		b.state.Error = err.Error()
		return
	}

	b.state.Repos = repos
}

// SelectRepo sets the selected repository, clears the current path, and
// replaces the tree wholesale with the repository's flattened snapshot.
func (b *Browser) SelectRepo(ctx context.Context, repo Repo) {
	b.mu.Lock()
	token := b.nextTokenLocked()
	b.treeToken = token
	selected := repo
	b.state.SelectedRepo = &selected
	b.state.CurrentPath = ""
	b.state.Loading = true
	b.state.Error = ""
	b.mu.Unlock()

	tree, err := b.api.Tree(ctx, repo.Owner, repo.Name)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.treeToken != token {
		// Stale response: a later SelectRepo call wins.
		return
	}
	b.state.Loading = false

	if err != nil {
		b.state.Error = err.Error()
		return
	}

	b.state.Tree = tree
}

// FileContent fetches a file, defaulting to the selected repository when
// owner/repo are omitted. Returns nil and records an error when repo
// context is unavailable or the fetch fails.
func (b *Browser) FileContent(ctx context.Context, path, owner, repo string) *FileContent {
	if owner == "" || repo == "" {
		b.mu.Lock()
		selected := b.state.SelectedRepo
		if selected == nil {
			b.state.Error = appErrors.ErrNoRepoSelected.Error()
			b.mu.Unlock()
			return nil
		}
		owner = selected.Owner
		repo = selected.Name
		b.mu.Unlock()
	}

	file, err := b.api.File(ctx, owner, repo, path)
	if err != nil {
		b.mu.Lock()
		b.state.Error = err.Error()
		b.mu.Unlock()
		return nil
	}

	return file
}

// ItemsAtPath returns the direct children of path in the current tree.
// An empty path means the repository root. This is a pure function over the
// flat tree snapshot: children of P are entries whose path starts with "P/"
// and whose remainder contains no further "/".
func (b *Browser) ItemsAtPath(path string) []TreeItem {
	b.mu.Lock()
	tree := append([]TreeItem(nil), b.state.Tree...)
	b.mu.Unlock()

	items := make([]TreeItem, 0)

	if path == "" {
		for _, item := range tree {
			if !strings.Contains(item.Path, "/") {
				items = append(items, item)
			}
		}
		return items
	}

	prefix := path + "/"
	for _, item := range tree {
		remainder, ok := strings.CutPrefix(item.Path, prefix)
		if !ok || remainder == "" {
			continue
		}
		if !strings.Contains(remainder, "/") {
			items = append(items, item)
		}
	}

	return items
}

// SetPath updates the current browsing path for breadcrumb-style navigation.
func (b *Browser) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.CurrentPath = strings.Trim(path, "/")
}

// ItemsAtCurrentPath returns the direct children of the current path.
func (b *Browser) ItemsAtCurrentPath() []TreeItem {
	b.mu.Lock()
	path := b.state.CurrentPath
	b.mu.Unlock()
	return b.ItemsAtPath(path)
}

// SearchCode runs a code search scoped to the selected repository when one
// is selected. Returns an empty list on failure; the error is recorded in
// state rather than returned.
func (b *Browser) SearchCode(ctx context.Context, query string) []SearchResult {
	b.mu.Lock()
	var owner, repo string
	if b.state.SelectedRepo != nil {
		owner = b.state.SelectedRepo.Owner
		repo = b.state.SelectedRepo.Name
	}
	b.mu.Unlock()

	results, err := b.api.SearchCode(ctx, query, owner, repo)
	if err != nil {
		b.mu.Lock()
		b.state.Error = err.Error()
		b.mu.Unlock()
		return []SearchResult{}
	}

	return results
}

// Analyze requests an AI analysis of the selected repository. Returns nil
// and records an error when no repository is selected or the request fails.
// A result with AIAnalysisAvailable == false is a successful (degraded)
// outcome and is returned as-is.
func (b *Browser) Analyze(ctx context.Context, focus string, includeFiles []string) *Analysis {
	b.mu.Lock()
	selected := b.state.SelectedRepo
	b.mu.Unlock()

	if selected == nil {
		b.mu.Lock()
		b.state.Error = appErrors.ErrNoRepoSelected.Error()
		b.mu.Unlock()
		return nil
	}

	analysis, err := b.api.Analyze(ctx, selected.Owner, selected.Name, AnalyzeRequest{
		Focus:        focus,
		IncludeFiles: includeFiles,
	})
	if err != nil {
		b.mu.Lock()
		b.state.Error = err.Error()
		b.mu.Unlock()
		return nil
	}

	return analysis
}

// beginOp marks the start of an operation: loading on, previous error
// cleared.
func (b *Browser) beginOp() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Loading = true
	b.state.Error = ""
}

// nextTokenLocked returns the next monotonic request token. Callers must
// hold mu.
func (b *Browser) nextTokenLocked() uint64 {
	b.seq++
	return b.seq
}
