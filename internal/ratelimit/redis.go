package ratelimit

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xinrengui/blog-backend/internal/platform/database"
)

// rateLimitKeyPrefix 是限流窗口在Redis中的有序集合键名前缀
const rateLimitKeyPrefix = "rate_limit:"

// allowScript 在Redis侧原子地完成“清理-计数-记录”三步：
// 先清掉窗口外的旧记录，再检查计数；达到上限时拒绝且不记录新条目，
// 否则写入本次请求并刷新过期时间。
// KEYS[1] 窗口键; ARGV: now(微秒), window(微秒), max, member, ttl(毫秒)
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local member = ARGV[4]
local ttl = tonumber(ARGV[5])

redis.call('ZREMRANGEBYSCORE', key, '-inf', '(' .. (now - window))
local count = redis.call('ZCARD', key)
if count >= max then
	return 0
end
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, ttl)
return 1
`)

// RedisLimiter 把每个键的请求时间戳存进一个有序集合，score是微秒时间戳。
// 多实例部署时窗口在Redis里共享，所有实例看到同一份计数。
type RedisLimiter struct {
	rdb *redis.Client
	cfg Config
}

// NewRedisLimiter 创建基于Redis的滑动窗口限流器。
func NewRedisLimiter(rdb *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg}
}

// generateUniqueID 根据给定的时间生成一个16字节的、抗冲突的集合成员ID。
// 结构: [ 8字节纳秒时间戳 (Big Endian) | 8字节随机数 ]
func generateUniqueID(t time.Time) (string, error) {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], uint64(t.UnixNano()))
	if _, err := rand.Read(b[8:16]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	// Redis不健康时不再逐个请求地等待超时，直接放行交给上层记录
	if !database.IsRedisHealthy() {
		return true, nil
	}

	now := time.Now()
	member, err := generateUniqueID(now)
	if err != nil {
		return false, fmt.Errorf("生成限流成员ID失败: %w", err)
	}

	// 键的过期时间比窗口稍长，作为清理的缓冲
	ttl := l.cfg.Window + time.Second

	result, err := allowScript.Run(ctx, l.rdb,
		[]string{rateLimitKeyPrefix + key},
		now.UnixMicro(),
		l.cfg.Window.Microseconds(),
		l.cfg.MaxRequests,
		member,
		ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("执行限流脚本失败: %w", err)
	}
	return result == 1, nil
}
