package reaction

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// cacheTagPrefix 是渲染缓存标签在Redis中的键名前缀
const cacheTagPrefix = "cache:"

// TagInvalidator 抽象了渲染缓存的标签失效操作。
// 反应向量成功自增后必须让标签 reactions:<itemID> 失效，
// 这样后续读取看到的是新向量。失效是契约内的副作用，不只是返回值。
type TagInvalidator interface {
	Invalidate(ctx context.Context, tag string) error
}

// CacheTag 返回某篇文章反应数据对应的缓存标签。
func CacheTag(itemID string) string {
	return "reactions:" + itemID
}

// RedisInvalidator 删除Redis中以标签命名的渲染缓存键。
type RedisInvalidator struct {
	rdb *redis.Client
}

// NewRedisInvalidator 创建基于Redis的标签失效器。
func NewRedisInvalidator(rdb *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{rdb: rdb}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, tag string) error {
	return r.rdb.Del(ctx, cacheTagPrefix+tag).Err()
}

// MemoryInvalidator 记录被失效的标签，用于测试中断言副作用。
type MemoryInvalidator struct {
	mu   sync.Mutex
	tags []string
}

// NewMemoryInvalidator 创建进程内的标签失效器。
func NewMemoryInvalidator() *MemoryInvalidator {
	return &MemoryInvalidator{}
}

func (m *MemoryInvalidator) Invalidate(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = append(m.tags, tag)
	return nil
}

// Invalidated 返回至今被失效过的标签列表。
func (m *MemoryInvalidator) Invalidated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tags...)
}
