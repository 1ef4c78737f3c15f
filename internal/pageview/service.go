package pageview

import (
	"context"
	"fmt"

	"github.com/xinrengui/blog-backend/internal/platform/database"
	"github.com/xinrengui/blog-backend/internal/platform/metadata"
	"gorm.io/gorm"
)

// DevPlaceholderViews 是开发模式下返回的占位浏览量。
// 避免本地开发反复刷新时污染线上共享的计数器。
const DevPlaceholderViews = 345678

// Service 封装了浏览量计数的业务语义：
// 开发模式占位、Redis健康门控、以及Redis失效时回退到SQL快照。
type Service struct {
	counter Counter
	db      *gorm.DB
	release bool
}

// NewService 创建浏览量服务。db用于读取计数器快照，可以为nil（此时降级读数恒为0）。
func NewService(counter Counter, db *gorm.DB, release bool) *Service {
	return &Service{counter: counter, db: db, release: release}
}

// IncrementAndGet 记录一次页面浏览并返回最新计数。
// 每次合格的页面加载都计一次，不按会话或IP去重。
// 存储失效时不让页面渲染失败：记录日志并返回最后已知的读数。
func (s *Service) IncrementAndGet(ctx context.Context, key string) int64 {
	if !s.release {
		return DevPlaceholderViews
	}

	if !database.IsRedisHealthy() {
		return s.lastKnown(key)
	}

	count, err := s.counter.IncrementAndGet(ctx, key)
	if err != nil {
		fmt.Printf("浏览量警告: 自增计数器 %s 失败: %v\n", key, err)
		return s.lastKnown(key)
	}
	return count
}

// Get 返回某个计数器的当前读数，不产生自增。
func (s *Service) Get(ctx context.Context, key string) int64 {
	if !s.release {
		return DevPlaceholderViews
	}

	if !database.IsRedisHealthy() {
		return s.lastKnown(key)
	}

	count, err := s.counter.Get(ctx, key)
	if err != nil {
		fmt.Printf("浏览量警告: 读取计数器 %s 失败: %v\n", key, err)
		return s.lastKnown(key)
	}
	return count
}

// lastKnown 返回SQL快照中的最后已知计数，没有快照时返回0。
func (s *Service) lastKnown(key string) int64 {
	if s.db == nil {
		return 0
	}
	count, err := metadata.GetSnapshotCount(s.db, key)
	if err != nil {
		fmt.Printf("浏览量警告: 读取计数器快照 %s 失败: %v\n", key, err)
		return 0
	}
	return count
}
