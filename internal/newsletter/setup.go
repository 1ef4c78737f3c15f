package newsletter

import (
	"fmt"

	"github.com/xinrengui/blog-backend/internal/platform/database"
)

// PrimeDB 负责初始化newsletter模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Subscriber{}); err != nil {
		return fmt.Errorf("无法迁移subscriber表: %w", err)
	}
	fmt.Println("Subscriber数据库表迁移成功。")
	return nil
}
