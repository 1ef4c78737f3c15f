package pageview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryCounterIncrementAndGet(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	// 键不存在时读数为0，首次自增返回1
	count, err := counter.Get(ctx, TotalViewsKey)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	count, err = counter.IncrementAndGet(ctx, TotalViewsKey)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = counter.Get(ctx, TotalViewsKey)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestMemoryCounterConcurrentIncrements(t *testing.T) {
	counter := NewMemoryCounter()
	ctx := context.Background()

	// N个并发自增之后，终值恰好等于N
	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := counter.IncrementAndGet(ctx, "post_views:hello")
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := counter.Get(ctx, "post_views:hello")
	require.NoError(t, err)
	require.Equal(t, int64(n), count)
}

func TestServiceDevPlaceholder(t *testing.T) {
	counter := NewMemoryCounter()
	service := NewService(counter, nil, false)
	ctx := context.Background()

	// 开发模式返回占位值，不触碰存储
	require.Equal(t, int64(DevPlaceholderViews), service.IncrementAndGet(ctx, TotalViewsKey))
	require.Equal(t, int64(DevPlaceholderViews), service.Get(ctx, TotalViewsKey))

	stored, err := counter.Get(ctx, TotalViewsKey)
	require.NoError(t, err)
	require.Equal(t, int64(0), stored)
}

func TestServiceReleaseModeCounts(t *testing.T) {
	counter := NewMemoryCounter()
	service := NewService(counter, nil, true)
	ctx := context.Background()

	require.Equal(t, int64(1), service.IncrementAndGet(ctx, TotalViewsKey))
	require.Equal(t, int64(2), service.IncrementAndGet(ctx, TotalViewsKey))
	require.Equal(t, int64(2), service.Get(ctx, TotalViewsKey))

	// 不同的键互不影响
	require.Equal(t, int64(1), service.IncrementAndGet(ctx, PostViewsKey("hello")))
}

func TestPostViewsKey(t *testing.T) {
	require.Equal(t, "post_views:hello-world", PostViewsKey("hello-world"))
}
