// Package github provides the typed service over the backend's /github/*
// endpoints and the connection/repository browser state container.
package github

// Connection describes the linked GitHub account.
// The zero value means "not connected".
type Connection struct {
	Connected bool   `json:"connected"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Repo is an immutable repository snapshot from a list call.
type Repo struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	Private       bool   `json:"isPrivate"`
	Fork          bool   `json:"isFork"`
	Description   string `json:"description,omitempty"`
	Language      string `json:"language,omitempty"`
	StarsCount    int    `json:"starsCount"`
	ForksCount    int    `json:"forksCount"`
	DefaultBranch string `json:"defaultBranch"`
}

// TreeItem is one flat entry (file or directory) in a repository snapshot.
// Paths are /-joined and unique within a repo+branch snapshot; hierarchy is
// derived by prefix filtering, not stored.
type TreeItem struct {
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
	Size        int64  `json:"size,omitempty"`
}

// FileContent is a file fetched on demand per path. Content may be empty
// for binary files the backend declines to inline.
type FileContent struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Size    int64  `json:"size"`
}

// SearchResult is one code search hit.
type SearchResult struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	Fragment   string `json:"fragment,omitempty"`
}

// IssueRequest describes a new issue. Creation is fire-and-forget: the
// created issue is returned but never held as state.
type IssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Issue is the backend's record of a created issue.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// AnalyzeRequest scopes an AI repository analysis.
type AnalyzeRequest struct {
	Focus        string   `json:"focus,omitempty"`
	IncludeFiles []string `json:"includeFiles,omitempty"`
}

// Analysis is the result of an AI repository analysis. A response with
// AIAnalysisAvailable == false is a soft degradation, not an error: the
// backend answered but could not run the model.
type Analysis struct {
	AIAnalysisAvailable bool     `json:"aiAnalysisAvailable"`
	Summary             string   `json:"summary,omitempty"`
	Suggestions         []string `json:"suggestions,omitempty"`
}
