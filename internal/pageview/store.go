package pageview

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Counter 抽象了单调递增计数器的存储。
// 生产环境由Redis实现，测试使用进程内实现。
type Counter interface {
	// IncrementAndGet 原子地把key对应的计数加一并返回新值。
	// 键不存在时从0开始，因此首次自增返回1。
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	// Get 返回key对应的当前计数，键不存在时返回0。
	Get(ctx context.Context, key string) (int64, error)
}

// RedisCounter 是Counter的Redis实现，序列化完全委托给Redis的INCR原语。
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter 创建一个基于Redis的计数器存储。
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) IncrementAndGet(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

func (c *RedisCounter) Get(ctx context.Context, key string) (int64, error) {
	val, err := c.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// MemoryCounter 是Counter的进程内实现。
// 仅用于测试和单实例开发环境，进程重启后计数丢失。
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryCounter 创建一个进程内计数器存储。
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int64)}
}

func (c *MemoryCounter) IncrementAndGet(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *MemoryCounter) Get(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key], nil
}
