package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xinrengui/blog-backend/pkg/lifecycle"
)

// MemoryLimiter 是Limiter的进程内实现，按键保存窗口内的请求时间戳。
// 仅适用于单实例部署和测试；多进程部署必须使用RedisLimiter。
type MemoryLimiter struct {
	cfg     Config
	mu      sync.Mutex
	windows map[string][]time.Time

	// now 可在测试中替换，用于确定性的时间推进
	now func() time.Time
}

// NewMemoryLimiter 创建进程内的滑动窗口限流器。
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:     cfg,
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.cfg.Window)

	// 计数前先清掉窗口外的旧时间戳
	valid := l.windows[key][:0]
	for _, ts := range l.windows[key] {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= l.cfg.MaxRequests {
		l.windows[key] = valid
		return false, nil
	}

	l.windows[key] = append(valid, now)
	return true, nil
}

// StartCleanup 启动后台清理循环，周期性删除整个窗口都已过期的键。
// 没有它，长尾IP会让windows无限增长。
func (l *MemoryLimiter) StartCleanup(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("进程内限流器清理循环已启动。")

	for {
		if err := handle.Sleep(l.cfg.Window); err != nil {
			return
		}
		l.cleanupOnce()
	}
}

func (l *MemoryLimiter) cleanupOnce() {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.now().Add(-l.cfg.Window)
	for key, stamps := range l.windows {
		live := false
		for _, ts := range stamps {
			if ts.After(windowStart) {
				live = true
				break
			}
		}
		if !live {
			delete(l.windows, key)
		}
	}
}
