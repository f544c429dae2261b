package notebook

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/jsonutil"
)

// Service implements notebook and source CRUD plus notebook-scoped chat.
type Service struct {
	client *api.Client
	logger *logrus.Logger
}

// NewService creates the /notebooks/* service.
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// List returns all notebooks owned by the authenticated user.
func (s *Service) List(ctx context.Context) ([]Notebook, error) {
	var notebooks []Notebook
	if err := s.client.Get(ctx, "/notebooks", &notebooks); err != nil {
		return nil, appErrors.WrapWithContext(err, "list notebooks")
	}
	return notebooks, nil
}

// Get fetches one notebook by ID.
func (s *Service) Get(ctx context.Context, id string) (*Notebook, error) {
	var nb Notebook
	if err := s.client.Get(ctx, "/notebooks/"+url.PathEscape(id), &nb); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotebookNotFound, id)
		}
		return nil, appErrors.WrapWithContext(err, "fetch notebook")
	}
	return &nb, nil
}

// Create creates a notebook. The title is required.
func (s *Service) Create(ctx context.Context, req CreateNotebookRequest) (*Notebook, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.EmptyFieldError("notebook title")
	}

	var nb Notebook
	if err := s.client.Post(ctx, "/notebooks", req, &nb); err != nil {
		return nil, appErrors.WrapWithContext(err, "create notebook")
	}

	s.logger.WithField("notebook_id", nb.ID).Info("Notebook created")
	return &nb, nil
}

// Update applies a partial update to a notebook.
func (s *Service) Update(ctx context.Context, id string, req UpdateNotebookRequest) (*Notebook, error) {
	var nb Notebook
	if err := s.client.Put(ctx, "/notebooks/"+url.PathEscape(id), req, &nb); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotebookNotFound, id)
		}
		return nil, appErrors.WrapWithContext(err, "update notebook")
	}
	return &nb, nil
}

// Delete removes a notebook and all its sources.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/notebooks/"+url.PathEscape(id), nil); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("%w: %s", appErrors.ErrNotebookNotFound, id)
		}
		return appErrors.WrapWithContext(err, "delete notebook")
	}
	return nil
}

// Sources lists the sources attached to a notebook.
func (s *Service) Sources(ctx context.Context, notebookID string) ([]Source, error) {
	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources"

	var sources []Source
	if err := s.client.Get(ctx, path, &sources); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotebookNotFound, notebookID)
		}
		return nil, appErrors.WrapWithContext(err, "list sources")
	}
	return sources, nil
}

// AddSource attaches a source to a notebook. Title and type are required.
func (s *Service) AddSource(ctx context.Context, notebookID string, req AddSourceRequest) (*Source, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.EmptyFieldError("source title")
	}
	if req.Type == "" {
		return nil, appErrors.RequiredFieldError("source type")
	}

	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources"

	var src Source
	if err := s.client.Post(ctx, path, req, &src); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotebookNotFound, notebookID)
		}
		return nil, appErrors.WrapWithContext(err, "add source")
	}
	return &src, nil
}

// ImportGitHubFile attaches a GitHub file as a notebook source. repository is
// the owner/name pair; content was fetched by the caller.
func (s *Service) ImportGitHubFile(ctx context.Context, notebookID, repository, filePath, content string) (*Source, error) {
	return s.AddSource(ctx, notebookID, AddSourceRequest{
		Title:      filePath,
		Type:       SourceTypeGitHub,
		Content:    content,
		Repository: repository,
		Path:       filePath,
	})
}

// DeleteSource detaches a source from its notebook.
func (s *Service) DeleteSource(ctx context.Context, notebookID, sourceID string) error {
	path := "/notebooks/" + url.PathEscape(notebookID) + "/sources/" + url.PathEscape(sourceID)

	if err := s.client.Delete(ctx, path, nil); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("%w: %s", appErrors.ErrSourceNotFound, sourceID)
		}
		return appErrors.WrapWithContext(err, "delete source")
	}
	return nil
}

// InvalidateGitHubSources asks the backend to mark every GitHub-backed
// source stale. Fired when the GitHub account is disconnected.
func (s *Service) InvalidateGitHubSources(ctx context.Context) error {
	if err := s.client.Post(ctx, "/notebooks/sources/invalidate-github", nil, nil); err != nil {
		return appErrors.WrapWithContext(err, "invalidate GitHub-backed sources")
	}

	s.logger.Info("GitHub-backed sources marked stale")
	return nil
}

// Chat sends a single-shot notebook-scoped chat message.
func (s *Service) Chat(ctx context.Context, notebookID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", appErrors.EmptyFieldError("message")
	}

	var resp ChatResponse
	if err := s.client.Post(ctx, "/ai/chat", ChatRequest{NotebookID: notebookID, Message: message}, &resp); err != nil {
		return "", appErrors.WrapWithContext(err, "send notebook chat message")
	}
	return resp.Reply, nil
}

// ChatStream streams a notebook-scoped completion. onDelta is invoked once
// per chunk; the assembled reply is returned when the stream terminates.
func (s *Service) ChatStream(ctx context.Context, notebookID, message string, onDelta func(string)) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", appErrors.EmptyFieldError("message")
	}

	events, err := s.client.Stream(ctx, "/ai/chat/stream", ChatRequest{NotebookID: notebookID, Message: message})
	if err != nil {
		return "", appErrors.WrapWithContext(err, "start chat stream")
	}

	var reply strings.Builder
	for event := range events {
		if event.Err != nil {
			return reply.String(), appErrors.StreamError("chat", event.Err)
		}

		chunk, err := jsonutil.UnmarshalJSON[chatChunk](event.Data)
		if err != nil {
			s.logger.WithError(err).Debug("Skipping malformed chat frame")
			continue
		}

		reply.WriteString(chunk.Delta)
		if onDelta != nil {
			onDelta(chunk.Delta)
		}
	}

	return reply.String(), nil
}
