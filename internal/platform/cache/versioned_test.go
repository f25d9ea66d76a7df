package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int `json:"total"`
}

func newVersioned(t *testing.T) (*Versioned, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVersioned(client, "test", time.Minute), mr
}

func TestFetchJSONCachesUntilBump(t *testing.T) {
	c, _ := newVersioned(t)
	ctx := context.Background()
	var calls int32
	loader := func(context.Context) (any, error) {
		n := atomic.AddInt32(&calls, 1)
		return payload{Total: int(n)}, nil
	}

	key, err := c.BuildKey(ctx, "stats", "all")
	require.NoError(t, err)
	assert.Equal(t, "test:stats:all:v1", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 1, got.Total)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	ver, err := c.Bump(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, ver)

	key, err = c.BuildKey(ctx, "stats", "all")
	require.NoError(t, err)
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 2, got.Total)
}

func TestFetchJSONDoesNotCacheErrors(t *testing.T) {
	c, mr := newVersioned(t)
	ctx := context.Background()
	boom := errors.New("boom")

	var got payload
	err := c.FetchJSON(ctx, "test:k", &got, func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("test:k"))
}

func TestFetchJSONCollapsesConcurrentMisses(t *testing.T) {
	c, _ := newVersioned(t)
	ctx := context.Background()
	var calls int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return payload{Total: 7}, nil
	}

	var wg sync.WaitGroup
	results := make([]payload, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.FetchJSON(ctx, "test:slow", &results[i], loader)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(5))
	for _, r := range results {
		assert.Equal(t, 7, r.Total)
	}
}

func TestPutGetJSON(t *testing.T) {
	c, _ := newVersioned(t)
	ctx := context.Background()

	var got payload
	found, err := c.GetJSON(ctx, "banner", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.PutJSON(ctx, "banner", payload{Total: 3}, time.Minute))
	found, err = c.GetJSON(ctx, "banner", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.Total)

	require.NoError(t, c.Forget(ctx, "banner"))
	found, err = c.GetJSON(ctx, "banner", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientFallsThrough(t *testing.T) {
	c := NewVersioned(nil, "test", time.Minute)
	var got payload
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) {
		return payload{Total: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
}

type tokenKey struct{}

func TestFetchJSONLoaderOutlivesCallerCancel(t *testing.T) {
	c, mr := newVersioned(t)
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), tokenKey{}, "token"))
	defer cancel()

	var got payload
	err := c.FetchJSON(ctx, "test:stats:v1", &got, func(loadCtx context.Context) (any, error) {
		cancel()
		if err := loadCtx.Err(); err != nil {
			return nil, err
		}
		_, hasDeadline := loadCtx.Deadline()
		assert.True(t, hasDeadline)
		assert.Equal(t, "token", loadCtx.Value(tokenKey{}))
		return payload{Total: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)
	assert.True(t, mr.Exists("test:stats:v1"))
}
