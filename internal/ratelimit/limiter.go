package ratelimit

import (
	"context"
	"time"
)

// Config 描述一个滑动窗口限流器：窗口W内每个键最多允许MaxRequests次请求。
type Config struct {
	Window      time.Duration
	MaxRequests int
}

// Limiter 是滑动窗口限流器的统一接口。
// Allow返回false表示该键在当前窗口内已达上限，本次请求不被记录。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
