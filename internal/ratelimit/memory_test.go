package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestLimiter 返回一个使用假时钟的进程内限流器。
func newTestLimiter(cfg Config) (*MemoryLimiter, *time.Time) {
	l := NewMemoryLimiter(cfg)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestMemoryLimiterSlidingWindow(t *testing.T) {
	cfg := Config{Window: 10 * time.Second, MaxRequests: 5}
	l, now := newTestLimiter(cfg)
	ctx := context.Background()

	// 窗口内的前5次请求全部放行
	for i := 0; i < 5; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, allowed, "第%d次请求应被放行", i+1)
	}

	// 同窗口内的第6次请求被拒绝
	allowed, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)

	// 被拒绝的请求不应被记录：连续重试仍然被拒
	allowed, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)

	// 其他IP不受影响
	allowed, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	require.True(t, allowed)

	// 窗口滑过之后重新放行
	*now = now.Add(cfg.Window + time.Second)
	allowed, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryLimiterPartialExpiry(t *testing.T) {
	cfg := Config{Window: 10 * time.Second, MaxRequests: 2}
	l, now := newTestLimiter(cfg)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, allowed)

	// 6秒后第二次请求，窗口仍满
	*now = now.Add(6 * time.Second)
	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.False(t, allowed)

	// 再过5秒，第一条记录滑出窗口，放出一个名额
	*now = now.Add(5 * time.Second)
	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryLimiterCleanupBoundsMap(t *testing.T) {
	cfg := Config{Window: time.Second, MaxRequests: 3}
	l, now := newTestLimiter(cfg)
	ctx := context.Background()

	for _, ip := range []string{"a", "b", "c"} {
		_, err := l.Allow(ctx, ip)
		require.NoError(t, err)
	}
	require.Len(t, l.windows, 3)

	// 整个窗口过期后，清理循环应删除所有键
	*now = now.Add(2 * time.Second)
	l.cleanupOnce()
	require.Empty(t, l.windows)
}

func TestMemoryLimiterConcurrentAccess(t *testing.T) {
	cfg := Config{Window: time.Minute, MaxRequests: 50}
	l := NewMemoryLimiter(cfg)
	ctx := context.Background()

	// 100个并发请求，恰好50个被放行
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := l.Allow(ctx, "same-ip")
			require.NoError(t, err)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 50, allowedCount)
}
