// Package notebook provides notebook and source management over the
// backend's /notebooks/* endpoints, plus notebook-scoped AI chat.
package notebook

import "time"

// Source types as stored by the backend.
const (
	SourceTypeText   = "text"
	SourceTypeURL    = "url"
	SourceTypeGitHub = "github"
)

// Notebook is a user-facing content container. All persistence lives in the
// backend; this is a session snapshot.
type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SourceCount int       `json:"sourceCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Source is a document or snippet attached to a notebook. GitHub-backed
// sources carry their origin coordinates and may be marked stale when the
// account is disconnected.
type Source struct {
	ID         string    `json:"id"`
	NotebookID string    `json:"notebookId"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Content    string    `json:"content,omitempty"`
	URL        string    `json:"url,omitempty"`
	Repository string    `json:"repository,omitempty"`
	Path       string    `json:"path,omitempty"`
	Stale      bool      `json:"isStale"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateNotebookRequest is the notebook creation body.
type CreateNotebookRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateNotebookRequest is the notebook update body. Empty fields are left
// unchanged by the backend.
type UpdateNotebookRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// AddSourceRequest is the source attachment body.
type AddSourceRequest struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	Content    string `json:"content,omitempty"`
	URL        string `json:"url,omitempty"`
	Repository string `json:"repository,omitempty"`
	Path       string `json:"path,omitempty"`
}

// ChatRequest is the notebook-scoped chat body.
type ChatRequest struct {
	NotebookID string `json:"notebookId"`
	Message    string `json:"message"`
}

// ChatResponse is the single-shot notebook chat reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// chatChunk is one streamed completion frame.
type chatChunk struct {
	Delta string `json:"delta"`
}
