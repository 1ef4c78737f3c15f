package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xinrengui/blog-backend/internal/platform/config"
)

// RDB 是一个全局的Redis客户端实例，供项目其他部分使用
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis数据库的连接
// 所有热数据（浏览计数、反应向量、访客槽位、限流窗口）都存放在这里
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	_, err := RDB.Ping(Ctx).Result()
	if err != nil {
		// 计数器可以降级，但启动时连不上Redis说明配置有问题，直接失败
		panic("无法连接到Redis: " + err.Error())
	}

	fmt.Println("Redis 连接成功！")
}
