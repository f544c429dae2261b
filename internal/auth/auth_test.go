package auth

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

func TestLogin(t *testing.T) {
	t.Run("installs the session token on the client", func(t *testing.T) {
		var sawBearer atomic.Value
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/login":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"token":"session-token","user":{"id":"u-1","email":"a@example.com"}}`))
			case "/auth/me":
				sawBearer.Store(r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"u-1","email":"a@example.com"}`))
			}
		}))

		session, err := svc.Login(context.Background(), "a@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "session-token", session.Token)

		_, err = svc.Whoami(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer session-token", sawBearer.Load())
	})

	t.Run("invalid credentials map to an authentication error", func(t *testing.T) {
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
		}))

		_, err := svc.Login(context.Background(), "a@example.com", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("empty credentials are rejected before the network", func(t *testing.T) {
		var hits atomic.Int64
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
		}))

		_, err := svc.Login(context.Background(), " ", "pw")
		require.Error(t, err)
		_, err = svc.Login(context.Background(), "a@example.com", "")
		require.Error(t, err)
		assert.Equal(t, int64(0), hits.Load())
	})
}

func TestWhoami_UnauthorizedMapsToNotLoggedIn(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))

	_, err := svc.Whoami(context.Background())
	require.ErrorIs(t, err, appErrors.ErrNotLoggedIn)
}

func TestCurrentSubscription(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subscriptions/current", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"plan":"pro","status":"active"}`))
	}))

	sub, err := svc.CurrentSubscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pro", sub.Plan)
	assert.Equal(t, "active", sub.Status)
}
