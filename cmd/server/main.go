package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/xinrengui/blog-backend/api"
	"github.com/xinrengui/blog-backend/internal/platform/config"
	"github.com/xinrengui/blog-backend/internal/platform/database"
	"github.com/xinrengui/blog-backend/internal/platform/health"
	"github.com/xinrengui/blog-backend/internal/platform/shutdown"
	"github.com/xinrengui/blog-backend/internal/platform/snapshot"
	"github.com/xinrengui/blog-backend/internal/platform/startup"
	"github.com/xinrengui/blog-backend/pkg/lifecycle"
)

func main() {
	// .env 仅用于本地开发时注入密钥，不存在时静默跳过
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 1. 执行应用首次启动初始化流程（各模块的表迁移）
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 2. 阻塞式执行一次启动后健康检查
	health.PerformCheck()

	// 3. 创建生命周期管理器并启动后台服务
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-check")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	snapshotHandle, err := gracefulMgr.NewServiceHandle("counter-snapshot")
	if err != nil {
		panic(err)
	}
	go snapshot.StartScheduler(snapshotHandle)

	// 4. 组装HTTP层
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := api.SetupRoutes(r, cfg, gracefulMgr); err != nil {
		panic(fmt.Sprintf("注册路由失败: %v", err))
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 5. 阻塞等待停机信号，停机前执行最终计数器快照
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
