package notebook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(api.Options{
		BaseURL:        server.URL,
		Token:          "test-token",
		HTTPClient:     server.Client(),
		RequestsPerSec: 1000,
		Burst:          1000,
		RetryAttempts:  1,
		RetryBackoff:   time.Millisecond,
	})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewService(client, logger)
}

func TestCreate(t *testing.T) {
	t.Run("returns the created notebook", func(t *testing.T) {
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/notebooks", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"nb-1","title":"Research","sourceCount":0}`))
		}))

		nb, err := svc.Create(context.Background(), CreateNotebookRequest{Title: "Research"})
		require.NoError(t, err)
		assert.Equal(t, "nb-1", nb.ID)
	})

	t.Run("empty title is rejected before the network", func(t *testing.T) {
		var hits atomic.Int64
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusCreated)
		}))

		_, err := svc.Create(context.Background(), CreateNotebookRequest{Title: " "})
		require.Error(t, err)
		assert.Equal(t, int64(0), hits.Load())
	})
}

func TestGet_MapsMissingNotebook(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))

	_, err := svc.Get(context.Background(), "nb-missing")
	require.ErrorIs(t, err, appErrors.ErrNotebookNotFound)
}

func TestSources(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notebooks/nb-1/sources", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"src-1","notebookId":"nb-1","title":"main.go","type":"github","repository":"octocat/hello-world","path":"main.go","isStale":true}]`))
	}))

	sources, err := svc.Sources(context.Background(), "nb-1")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, SourceTypeGitHub, sources[0].Type)
	assert.True(t, sources[0].Stale)
}

func TestImportGitHubFile(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notebooks/nb-1/sources", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"type":"github"`)
		assert.Contains(t, string(body), `"repository":"octocat/hello-world"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"src-2","notebookId":"nb-1","title":"README.md","type":"github"}`))
	}))

	src, err := svc.ImportGitHubFile(context.Background(), "nb-1", "octocat/hello-world", "README.md", "# Hello")
	require.NoError(t, err)
	assert.Equal(t, "src-2", src.ID)
}

func TestDeleteSource_MapsMissingSource(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))

	err := svc.DeleteSource(context.Background(), "nb-1", "src-missing")
	require.ErrorIs(t, err, appErrors.ErrSourceNotFound)
}

func TestInvalidateGitHubSources(t *testing.T) {
	var hits atomic.Int64
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notebooks/sources/invalidate-github", r.URL.Path)
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, svc.InvalidateGitHubSources(context.Background()))
	assert.Equal(t, int64(1), hits.Load())
}

func TestChatStream_AssemblesDeltas(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/chat/stream", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, delta := range []string{"Hel", "lo", " there"} {
			_, _ = w.Write([]byte(`data: {"delta":"` + delta + `"}` + "\n\n"))
			flusher.Flush()
		}
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
		flusher.Flush()
	}))

	var deltas []string
	reply, err := svc.ChatStream(context.Background(), "nb-1", "hi", func(d string) {
		deltas = append(deltas, d)
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, []string{"Hel", "lo", " there"}, deltas)
}

func TestDiffSource(t *testing.T) {
	t.Run("identical contents yield an empty diff", func(t *testing.T) {
		src := Source{Title: "notes.md", Content: "one\ntwo\n"}
		diff, err := DiffSource(src, "one\ntwo\n")
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("changed line appears in the unified diff", func(t *testing.T) {
		src := Source{Title: "notes.md", Content: "one\ntwo\n"}
		diff, err := DiffSource(src, "one\nthree\n")
		require.NoError(t, err)
		assert.Contains(t, diff, "-two")
		assert.Contains(t, diff, "+three")
		assert.Contains(t, diff, "source/notes.md")
	})
}
