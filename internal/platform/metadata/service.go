package metadata

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers for Type Conversion ---

// GetSnapshotCount 读取某个Redis计数器键的最近快照值。
// 没有快照时返回0，这也是计数器缺省时的语义。
func GetSnapshotCount(db *gorm.DB, redisKey string) (int64, error) {
	valueStr, err := GetValue(db, SnapshotKey(redisKey))
	if err != nil {
		return 0, err
	}
	if valueStr == "" {
		return 0, nil
	}
	count, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析计数器快照 '%s' 的值: %w", redisKey, err)
	}
	return count, nil
}

// SetSnapshotCount 写入某个Redis计数器键的快照值。
func SetSnapshotCount(db *gorm.DB, redisKey string, count int64) error {
	return SetValue(db, SnapshotKey(redisKey), strconv.FormatInt(count, 10))
}
