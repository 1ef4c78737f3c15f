package startup

import (
	"fmt"

	"github.com/xinrengui/blog-backend/internal/comment"
	"github.com/xinrengui/blog-backend/internal/newsletter"
	"github.com/xinrengui/blog-backend/internal/platform/metadata"
)

// InitializeApplication 是应用首次启动时执行的总入口
// 依次完成各模块的数据库迁移；计数本体在Redis中，不需要预热
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := comment.PrimeDB(); err != nil {
		return err
	}
	if err := newsletter.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
