package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Site      SiteConfig      `mapstructure:"site"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Email     EmailConfig     `mapstructure:"email"`
	Content   ContentConfig   `mapstructure:"content"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// IsRelease 判断当前是否运行在生产模式。
// 开发模式下计数器返回占位值，且不发送任何外部邮件。
func (s ServerConfig) IsRelease() bool {
	return s.Mode == "release"
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"` // "sqlite" 或 "postgres"
	Redis    RedisConfig    `mapstructure:"redis"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了PostgreSQL的连接配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SiteConfig 定义了站点自身的配置
type SiteConfig struct {
	// BaseURL 是博客前端的完整地址，用于拼接邮件中的链接
	BaseURL string `mapstructure:"baseUrl"`
	// HashidSalt 用于混淆评论ID
	HashidSalt string `mapstructure:"hashidSalt"`
	// BlockedIPs 是被封禁的访客IP列表
	BlockedIPs []string `mapstructure:"blockedIps"`
}

// AuthConfig 定义了身份认证服务的配置
type AuthConfig struct {
	// SessionSecret 用于校验会话Cookie中JWT的签名
	SessionSecret string `mapstructure:"sessionSecret"`
	// APIKey 用于调用身份服务的后端接口（查询用户邮箱）
	APIKey string `mapstructure:"apiKey"`
	// SignOutURL 是结束会话后的跳转地址
	SignOutURL string `mapstructure:"signOutUrl"`
}

// EmailConfig 定义了事务性邮件的配置
type EmailConfig struct {
	From         string `mapstructure:"from"`
	ResendAPIKey string `mapstructure:"resendApiKey"`
}

// ContentConfig 定义了内容CMS（Sanity）的查询配置
type ContentConfig struct {
	ProjectID  string `mapstructure:"projectId"`
	Dataset    string `mapstructure:"dataset"`
	APIVersion string `mapstructure:"apiVersion"`
	UseCDN     bool   `mapstructure:"useCdn"`
}

// RateLimitConfig 定义了反应接口的滑动窗口限流配置
type RateLimitConfig struct {
	// WindowSeconds 是滑动窗口的长度（秒）
	WindowSeconds int `mapstructure:"windowSeconds"`
	// MaxRequests 是窗口内单个IP允许的最大请求数
	MaxRequests int `mapstructure:"maxRequests"`
}

// Window 返回滑动窗口的时长。
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 填入与原站行为一致的默认值
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "blog.db")
	v.SetDefault("content.apiVersion", "2024-01-01")
	v.SetDefault("rateLimit.windowSeconds", 10)
	v.SetDefault("rateLimit.maxRequests", 30)

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}
