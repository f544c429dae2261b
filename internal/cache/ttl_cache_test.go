package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute, 10)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("status", "connected")
	val, ok := c.Get("status")
	require.True(t, ok)
	assert.Equal(t, "connected", val)
}

func TestExpiry(t *testing.T) {
	c := New[int](10*time.Millisecond, 10)
	c.Set("n", 42)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("n")
	assert.False(t, ok)
}

func TestGetOrLoad(t *testing.T) {
	c := New[string](time.Minute, 10)

	var calls atomic.Int32
	loader := func() (string, error) {
		calls.Add(1)
		return "loaded", nil
	}

	val, err := c.GetOrLoad("key", loader)
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)

	val, err = c.GetOrLoad("key", loader)
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrLoad_LoaderError(t *testing.T) {
	c := New[string](time.Minute, 10)

	_, err := c.GetOrLoad("key", func() (string, error) {
		return "", appErrors.ErrTest
	})
	require.Error(t, err)

	// Errors are not cached.
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestGetOrLoad_Concurrent(t *testing.T) {
	c := New[string](time.Minute, 10)

	var calls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrLoad("key", func() (string, error) {
				calls.Add(1)
				time.Sleep(5 * time.Millisecond)
				return "loaded", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestEvictionAtCapacity(t *testing.T) {
	c := New[int](time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Size())
	val, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, val)
}

func TestClearAndStats(t *testing.T) {
	c := New[int](time.Minute, 10)
	c.Set("a", 1)

	_, _ = c.Get("a")
	_, _ = c.Get("missing")

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 0.5, rate, 0.001)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
