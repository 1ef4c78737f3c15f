package visitor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store 抽象了“当前访客/上一位访客”两个槽位的存储。
type Store interface {
	// RecordCurrent 把record写入“当前访客”槽位，并把被顶替的旧值
	// 挪进“上一位”槽位。写入是last-write-wins，不排队。
	RecordCurrent(ctx context.Context, record Record) error
	// RotateAndGet 读取两个槽位，把“当前”轮换进“上一位”，
	// 并返回轮换前“上一位”槽位的值——即查看者之前的那位访客。
	RotateAndGet(ctx context.Context) (Record, error)
}

// RedisStore 是Store的Redis实现。
// 读-轮换-写不是事务性的：并发请求可能交错，偶尔丢掉一次轮换，
// 或让访客看到自己的记录。这个小组件是装饰性的，按原站行为保留该竞态。
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore 创建基于Redis的访客槽位存储。
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) RecordCurrent(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("无法序列化访客记录: %w", err)
	}

	// SET ... GET 返回被顶替的旧值，把它挪进“上一位”槽位
	old, err := s.rdb.SetArgs(ctx, CurrentVisitorKey, payload, redis.SetArgs{Get: true}).Result()
	if err == redis.Nil {
		return nil // 之前没有访客
	}
	if err != nil {
		return fmt.Errorf("写入当前访客槽位失败: %w", err)
	}
	if old != "" {
		if err := s.rdb.Set(ctx, LastVisitorKey, old, 0).Err(); err != nil {
			return fmt.Errorf("轮换上一位访客槽位失败: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) RotateAndGet(ctx context.Context) (Record, error) {
	values, err := s.rdb.MGet(ctx, LastVisitorKey, CurrentVisitorKey).Result()
	if err != nil {
		return Record{}, fmt.Errorf("读取访客槽位失败: %w", err)
	}

	// 把“当前访客”轮换进“上一位”槽位，下一位读者将看到它
	if raw, ok := values[1].(string); ok {
		if err := s.rdb.Set(ctx, LastVisitorKey, raw, 0).Err(); err != nil {
			return Record{}, fmt.Errorf("轮换访客槽位失败: %w", err)
		}
	}

	// 返回轮换前的“上一位”访客
	raw, ok := values[0].(string)
	if !ok {
		return DefaultRecord(), nil
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return DefaultRecord(), nil
	}
	return record, nil
}

// MemoryStore 是Store的进程内实现，用于测试和开发环境。
type MemoryStore struct {
	mu      sync.Mutex
	current *Record
	last    *Record
}

// NewMemoryStore 创建进程内的访客槽位存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) RecordCurrent(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = s.current
	s.current = &record
	return nil
}

func (s *MemoryStore) RotateAndGet(_ context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.last
	if s.current != nil {
		rotated := *s.current
		s.last = &rotated
	}
	if prior == nil {
		return DefaultRecord(), nil
	}
	return *prior, nil
}
