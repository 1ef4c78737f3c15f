package metadata

import "gorm.io/gorm"

// Metadata 定义了存储系统元数据的键值对表结构
// 目前用于持久化Redis计数器的定期快照，作为Redis不可用时的兜底读数
type Metadata struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Key 是元数据的唯一键，例如 "snapshot:total_page_views"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Value 存储元数据的值
	Value string `gorm:"type:varchar(255)"`
}
