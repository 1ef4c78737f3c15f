package reaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// VectorSize 是每篇文章的反应种类数，向量长度恒为4。
const VectorSize = 4

// reactionKeyPrefix 是反应向量在Redis中的键名前缀，后接文章ID
const reactionKeyPrefix = "reactions:"

// ErrInvalidIndex 表示反应下标不在[0, VectorSize)范围内。
var ErrInvalidIndex = errors.New("反应下标越界")

// Vector 是一篇文章的反应计数向量，每个元素只增不减。
type Vector [VectorSize]int64

// Store 抽象了反应向量的存储。
// 对同一下标的并发自增不允许丢失更新；不同下标的自增天然可交换。
type Store interface {
	// Get 返回文章的当前反应向量。
	// 首次访问的文章返回全零向量，并把该缺省值持久化。
	Get(ctx context.Context, itemID string) (Vector, error)
	// IncrementAt 原子地把向量中index位置的计数加一并返回更新后的向量。
	// index越界时返回ErrInvalidIndex，向量保持不变。
	IncrementAt(ctx context.Context, itemID string, index int) (Vector, error)
}

// RedisStore 把每个向量存成一个Redis Hash，字段"0".."3"各存一个计数。
// 单个下标的自增由HINCRBY保证原子性。
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore 创建基于Redis的反应向量存储。
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func reactionKey(itemID string) string {
	return reactionKeyPrefix + itemID
}

// fieldNames 是Hash中四个计数字段的名字。
var fieldNames = [VectorSize]string{"0", "1", "2", "3"}

func (s *RedisStore) Get(ctx context.Context, itemID string) (Vector, error) {
	key := reactionKey(itemID)

	values, err := s.rdb.HMGet(ctx, key, fieldNames[:]...).Result()
	if err != nil {
		return Vector{}, fmt.Errorf("读取反应向量 %s 失败: %w", itemID, err)
	}

	var vector Vector
	missing := true
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		missing = false
		count, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return Vector{}, fmt.Errorf("反应向量 %s 的字段 %d 损坏: %w", itemID, i, err)
		}
		vector[i] = count
	}

	// 首次访问：把全零向量持久化，后续自增在这个基线上进行。
	// 必须用HSETNX逐字段写入：HMGET和这里之间可能插进一次HINCRBY，
	// 无条件的HSET会把那次自增抹回0
	if missing {
		pipe := s.rdb.TxPipeline()
		for _, field := range fieldNames {
			pipe.HSetNX(ctx, key, field, 0)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return Vector{}, fmt.Errorf("初始化反应向量 %s 失败: %w", itemID, err)
		}
	}

	return vector, nil
}

func (s *RedisStore) IncrementAt(ctx context.Context, itemID string, index int) (Vector, error) {
	if index < 0 || index >= VectorSize {
		return Vector{}, ErrInvalidIndex
	}

	key := reactionKey(itemID)

	// HINCRBY和读回放在同一个事务里，返回的向量一定包含本次自增
	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldNames[index], 1)
	readCmd := pipe.HMGet(ctx, key, fieldNames[:]...)
	if _, err := pipe.Exec(ctx); err != nil {
		return Vector{}, fmt.Errorf("自增反应向量 %s[%d] 失败: %w", itemID, index, err)
	}

	var vector Vector
	for i, raw := range readCmd.Val() {
		str, ok := raw.(string)
		if !ok {
			continue // 其余字段尚未初始化，按0处理
		}
		count, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return Vector{}, fmt.Errorf("反应向量 %s 的字段 %d 损坏: %w", itemID, i, err)
		}
		vector[i] = count
	}
	return vector, nil
}

// MemoryStore 是Store的进程内实现，用于测试和开发环境。
type MemoryStore struct {
	mu      sync.Mutex
	vectors map[string]*Vector
}

// NewMemoryStore 创建进程内的反应向量存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vectors: make(map[string]*Vector)}
}

func (s *MemoryStore) Get(_ context.Context, itemID string) (Vector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vectors[itemID]
	if !ok {
		v = &Vector{}
		s.vectors[itemID] = v
	}
	return *v, nil
}

func (s *MemoryStore) IncrementAt(_ context.Context, itemID string, index int) (Vector, error) {
	if index < 0 || index >= VectorSize {
		return Vector{}, ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vectors[itemID]
	if !ok {
		v = &Vector{}
		s.vectors[itemID] = v
	}
	v[index]++
	return *v, nil
}
