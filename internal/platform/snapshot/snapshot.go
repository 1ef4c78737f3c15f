package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/xinrengui/blog-backend/internal/pageview"
	"github.com/xinrengui/blog-backend/internal/platform/database"
	"github.com/xinrengui/blog-backend/internal/platform/metadata"
	"github.com/xinrengui/blog-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

const snapshotInterval = 10 * time.Minute // 定时快照频率

var snapshotMutex sync.Mutex // 避免定时快照与停机快照并发执行

// StartScheduler 启动一个后台Goroutine来定期把Redis计数器快照到SQL。
// 快照值在Redis不可用时作为浏览量的最后已知读数返回给前端。
func StartScheduler(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("计数器快照调度器已启动。")

	for {
		// 使用可中断的休眠，收到停机信号时立刻退出循环。
		if err := handle.Sleep(snapshotInterval); err != nil {
			fmt.Println("快照调度器: 休眠被中断，正在关闭...")
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("快照调度器: 检测到Redis不可用，跳过本次快照。")
			continue
		}

		if err := SnapshotCounters(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("快照调度器错误: 执行计数器快照失败: %v\n", err)
			}
		}
	}
}

// SnapshotCounters 把站点总浏览量和所有单篇浏览量从Redis复制到metadata表。
// 计数只增不减，所以快照即使滞后也只会少报，不会多报。
func SnapshotCounters(ctx context.Context) error {
	snapshotMutex.Lock()
	defer snapshotMutex.Unlock()

	// 1. 收集所有计数器键：站点总量 + SCAN出的单篇计数
	keys := []string{pageview.TotalViewsKey}

	var cursor uint64
	matchPattern := pageview.PostViewsKeyPrefix + "*"
	for {
		batch, nextCursor, err := database.RDB.Scan(ctx, cursor, matchPattern, 500).Result()
		if err != nil {
			return fmt.Errorf("扫描单篇浏览量键失败: %w", err)
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	// 2. 一次MGET读出全部计数值
	values, err := database.RDB.MGet(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("批量读取计数器失败: %w", err)
	}

	// 3. 在一个SQL事务中写入全部快照
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i, key := range keys {
			raw, ok := values[i].(string)
			if !ok {
				continue // 键不存在，保留上一次的快照
			}
			count, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fmt.Printf("快照警告: 计数器 %s 的值 %q 不是整数，已跳过。\n", key, raw)
				continue
			}
			if err := metadata.SetSnapshotCount(tx, key, count); err != nil {
				return err
			}
		}
		return metadata.SetValue(tx, metadata.LastSnapshotTimeKey, time.Now().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("写入计数器快照失败: %w", err)
	}

	fmt.Printf("计数器快照完成，共 %d 个键。\n", len(keys))
	return nil
}
