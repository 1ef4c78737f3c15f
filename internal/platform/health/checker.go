package health

import (
	"context"
	"fmt"
	"time"

	"github.com/xinrengui/blog-backend/internal/platform/database"
	"github.com/xinrengui/blog-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次Redis健康检查并更新全局状态。
// 这里的Redis不是可重建的缓存，而是计数数据的所有者，
// 所以检查只关心连通性，不需要感知Redis是否重启过。
func PerformCheck() {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	err := database.RDB.Ping(ctx).Err()
	database.UpdateStatus(err == nil)
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期执行健康检查。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("健康检查器: 收到停机信号，正在关闭...")
			return
		}
		PerformCheck()
	}
}
