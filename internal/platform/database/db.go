package database

import (
	"fmt"
	"log"
	"os"

	"github.com/xinrengui/blog-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 初始化数据库连接
// 根据配置选择SQLite（默认，单机部署）或PostgreSQL
func InitDB(cfg config.DatabaseConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{Logger: newLogger}

	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.Sqlite.Path), gormCfg)
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
