package counter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileCounter(t *testing.T) *FileCounter {
	t.Helper()
	c, err := NewFileCounter(filepath.Join(t.TempDir(), "data", "contador.txt"))
	require.NoError(t, err)
	return c
}

func TestFileCounter_StartsAtZero(t *testing.T) {
	c := newTestFileCounter(t)

	total, err := c.Read(context.Background())

	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestFileCounter_IncrementAndRead(t *testing.T) {
	c := newTestFileCounter(t)
	ctx := context.Background()

	total, err := c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Read does not increment.
	total, err = c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	total, err = c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFileCounter_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contador.txt")
	ctx := context.Background()

	first, err := NewFileCounter(path)
	require.NoError(t, err)
	_, err = first.Increment(ctx)
	require.NoError(t, err)
	_, err = first.Increment(ctx)
	require.NoError(t, err)

	// A fresh instance simulates a process restart.
	second, err := NewFileCounter(path)
	require.NoError(t, err)
	total, err := second.Read(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFileCounter_ConcurrentIncrementsLoseNothing(t *testing.T) {
	const n = 100
	c := newTestFileCounter(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := c.Increment(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	total, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
}

func TestFileCounter_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contador.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0o644))

	c, err := NewFileCounter(path)
	require.NoError(t, err)

	_, err = c.Read(context.Background())
	assert.Error(t, err)
}

func TestFileCounter_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contador.txt")
	require.NoError(t, os.WriteFile(path, []byte(" 42\n"), 0o644))

	c, err := NewFileCounter(path)
	require.NoError(t, err)

	total, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

// TestRedisCounter_Smoke exercises the Redis backend against a live server.
// Skipped unless TEST_REDIS_ADDR is set.
func TestRedisCounter_Smoke(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping Redis smoke test")
	}

	ctx := context.Background()
	c, err := NewRedisCounter(ctx, addr, "", 0)
	require.NoError(t, err)
	defer c.Close()

	before, err := c.Read(ctx)
	require.NoError(t, err)

	after, err := c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}
