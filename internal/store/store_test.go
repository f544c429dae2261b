package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelab/notelab-cli/internal/agent"
	"github.com/notelab/notelab-cli/internal/wellness"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpen(t *testing.T) {
	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := Open(Options{})
		require.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("creates parent directories for file-backed stores", func(t *testing.T) {
		path := t.TempDir() + "/nested/dir/history.db"
		s, err := Open(Options{Path: path})
		require.NoError(t, err)
		require.NoError(t, s.Close())
	})
}

func TestTranscript(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	messages := []wellness.Message{
		{ID: "m-1", Role: wellness.RoleUser, Content: "hello", CreatedAt: base},
		{ID: "m-2", Role: wellness.RoleAssistant, Content: "hi there", CreatedAt: base.Add(time.Second)},
		{ID: "m-3", Role: wellness.RoleUser, Content: "how are you", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, msg := range messages {
		require.NoError(t, s.SaveMessage(ctx, "wellness", msg))
	}

	t.Run("returns messages in chronological order", func(t *testing.T) {
		got, err := s.Transcript(ctx, "wellness", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "m-1", got[0].ID)
		assert.Equal(t, "m-3", got[2].ID)
	})

	t.Run("limit keeps the most recent messages", func(t *testing.T) {
		got, err := s.Transcript(ctx, "wellness", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "m-2", got[0].ID)
		assert.Equal(t, "m-3", got[1].ID)
	})

	t.Run("saving the same message twice is a no-op", func(t *testing.T) {
		require.NoError(t, s.SaveMessage(ctx, "wellness", messages[0]))
		got, err := s.Transcript(ctx, "wellness", 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("conversations are isolated", func(t *testing.T) {
		require.NoError(t, s.SaveMessage(ctx, "notebook", wellness.Message{
			ID: "m-other", Role: wellness.RoleUser, Content: "unrelated", CreatedAt: base,
		}))
		got, err := s.Transcript(ctx, "wellness", 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("clear removes only the named conversation", func(t *testing.T) {
		require.NoError(t, s.ClearTranscript(ctx, "wellness"))

		got, err := s.Transcript(ctx, "wellness", 0)
		require.NoError(t, err)
		assert.Empty(t, got)

		other, err := s.Transcript(ctx, "notebook", 0)
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})
}

func TestUsageCache(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	entries := []agent.UsageEntry{
		{ID: "use-1", TokenID: "tok-1", Operation: "notebooks.list", Status: 200, Timestamp: base},
		{ID: "use-2", TokenID: "tok-1", Operation: "sources.add", Status: 201, Timestamp: base.Add(time.Minute)},
		{ID: "use-3", TokenID: "tok-2", Operation: "chat.send", Status: 200, Timestamp: base.Add(2 * time.Minute)},
	}
	require.NoError(t, s.CacheUsage(ctx, "", entries))

	t.Run("returns rows newest first", func(t *testing.T) {
		got, err := s.CachedUsage(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "use-3", got[0].ID)
	})

	t.Run("scopes to a token", func(t *testing.T) {
		got, err := s.CachedUsage(ctx, "tok-1", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "use-2", got[0].ID)
	})

	t.Run("refresh replaces only the token's rows", func(t *testing.T) {
		fresh := []agent.UsageEntry{
			{ID: "use-4", TokenID: "tok-1", Operation: "notebooks.get", Status: 200, Timestamp: base.Add(3 * time.Minute)},
		}
		require.NoError(t, s.CacheUsage(ctx, "tok-1", fresh))

		scoped, err := s.CachedUsage(ctx, "tok-1", 0)
		require.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, "use-4", scoped[0].ID)

		other, err := s.CachedUsage(ctx, "tok-2", 0)
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})
}
