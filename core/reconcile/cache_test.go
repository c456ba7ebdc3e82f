package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache(t *testing.T) {
	builds := 0
	build := func(ctx context.Context) (*Snapshot, error) {
		builds++
		return &Snapshot{Languages: Languages{{Code: "en"}}, Built: time.Now()}, nil
	}

	t.Run("Reuses fresh snapshot", func(t *testing.T) {
		builds = 0
		cache := NewSnapshotCache(time.Minute)

		first, err := cache.GetOrBuild(context.Background(), "locize", build)
		require.NoError(t, err)
		second, err := cache.GetOrBuild(context.Background(), "locize", build)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, builds)
		assert.Equal(t, time.Minute, first.TTL)
	})

	t.Run("Zero TTL always rebuilds", func(t *testing.T) {
		builds = 0
		cache := NewSnapshotCache(0)

		_, _ = cache.GetOrBuild(context.Background(), "locize", build)
		_, _ = cache.GetOrBuild(context.Background(), "locize", build)

		assert.Equal(t, 2, builds)
	})

	t.Run("Invalidate forces rebuild", func(t *testing.T) {
		builds = 0
		cache := NewSnapshotCache(time.Minute)

		_, _ = cache.GetOrBuild(context.Background(), "locize", build)
		cache.Invalidate("locize")
		_, _ = cache.GetOrBuild(context.Background(), "locize", build)

		assert.Equal(t, 2, builds)
	})

	t.Run("Errors are not cached", func(t *testing.T) {
		cache := NewSnapshotCache(time.Minute)
		calls := 0
		failing := func(ctx context.Context) (*Snapshot, error) {
			calls++
			return nil, errors.New("store down")
		}

		_, err := cache.GetOrBuild(context.Background(), "locize", failing)
		assert.EqualError(t, err, "store down")
		_, err = cache.GetOrBuild(context.Background(), "locize", failing)
		assert.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("Caller cancellation does not cancel the build", func(t *testing.T) {
		cache := NewSnapshotCache(time.Minute)
		ctx, cancel := context.WithCancel(context.WithValue(context.Background(), cacheKeyCtx{}, "rid"))
		cancel()

		snapshot, err := cache.GetOrBuild(ctx, "locize", func(ctx context.Context) (*Snapshot, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			assert.Equal(t, "rid", ctx.Value(cacheKeyCtx{}))
			return &Snapshot{Built: time.Now()}, nil
		})

		require.NoError(t, err)
		assert.NotNil(t, snapshot)
	})
}

type cacheKeyCtx struct{}

func TestSnapshot_IsExpired(t *testing.T) {
	assert.True(t, (&Snapshot{Built: time.Now()}).IsExpired())
	assert.False(t, (&Snapshot{Built: time.Now(), TTL: time.Hour}).IsExpired())
	assert.True(t, (&Snapshot{Built: time.Now().Add(-2 * time.Hour), TTL: time.Hour}).IsExpired())
}
