package comment

import (
	"fmt"

	"github.com/xinrengui/blog-backend/internal/platform/database"
)

// PrimeDB 负责初始化comment模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Comment{}); err != nil {
		return fmt.Errorf("无法迁移comment表: %w", err)
	}
	fmt.Println("Comment数据库表迁移成功。")
	return nil
}
