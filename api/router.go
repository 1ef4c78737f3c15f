package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/xinrengui/blog-backend/internal/activity"
	"github.com/xinrengui/blog-backend/internal/comment"
	"github.com/xinrengui/blog-backend/internal/content"
	"github.com/xinrengui/blog-backend/internal/favicon"
	"github.com/xinrengui/blog-backend/internal/newsletter"
	"github.com/xinrengui/blog-backend/internal/pageview"
	"github.com/xinrengui/blog-backend/internal/platform/config"
	"github.com/xinrengui/blog-backend/internal/platform/database"
	"github.com/xinrengui/blog-backend/internal/platform/mailer"
	"github.com/xinrengui/blog-backend/internal/ratelimit"
	"github.com/xinrengui/blog-backend/internal/reaction"
	"github.com/xinrengui/blog-backend/internal/user"
	"github.com/xinrengui/blog-backend/internal/visitor"
	"github.com/xinrengui/blog-backend/pkg/hashid"
	"github.com/xinrengui/blog-backend/pkg/lifecycle"
)

// SetupRoutes 组装所有依赖并注册项目的全部API路由。
// gracefulMgr用于托管进程内限流器的清理循环。
func SetupRoutes(router *gin.Engine, cfg *config.Config, gracefulMgr *lifecycle.Manager) error {
	release := cfg.Server.IsRelease()

	// --- 共享依赖 ---
	codec, err := hashid.NewCodec(cfg.Site.HashidSalt)
	if err != nil {
		return fmt.Errorf("初始化评论ID编码器失败: %w", err)
	}

	var sender mailer.Sender = mailer.LogSender{}
	if release && cfg.Email.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	}

	contentClient := content.NewClient(cfg.Content)
	directory := user.NewClerkDirectory(cfg.Auth.APIKey)

	// 反应接口的限流器：生产用Redis共享窗口，开发用进程内窗口
	limiterCfg := ratelimit.Config{
		Window:      cfg.RateLimit.Window(),
		MaxRequests: cfg.RateLimit.MaxRequests,
	}
	var limiter ratelimit.Limiter
	if release {
		limiter = ratelimit.NewRedisLimiter(database.RDB, limiterCfg)
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(limiterCfg)
		handle, err := gracefulMgr.NewServiceHandle("ratelimit-cleanup")
		if err != nil {
			return err
		}
		go memLimiter.StartCleanup(handle)
		limiter = memLimiter
	}

	// --- 各模块的存储与处理器 ---
	visitorStore := visitor.NewRedisStore(database.RDB)
	visitorHandler := visitor.NewHandler(visitorStore)

	pageviewService := pageview.NewService(pageview.NewRedisCounter(database.RDB), database.DB, release)
	pageviewHandler := pageview.NewHandler(pageviewService)

	reactionHandler := reaction.NewHandler(
		reaction.NewRedisStore(database.RDB),
		reaction.NewRedisInvalidator(database.RDB),
	)

	commentService := comment.NewService(
		database.DB, codec, contentClient, sender, directory, cfg.Site.BaseURL, release)
	commentHandler := comment.NewHandler(commentService)

	newsletterHandler := newsletter.NewHandler(
		newsletter.NewService(database.DB, sender, cfg.Site.BaseURL, release))

	faviconHandler := favicon.NewHandler(database.RDB)

	// --- 全局中间件 ---
	router.Use(visitor.BlockedIPMiddleware(cfg.Site.BlockedIPs))
	router.Use(visitor.GeoMiddleware(visitorStore))

	// --- 路由注册 ---
	api := router.Group("/api")
	{
		// 浏览量
		api.GET("/views", pageviewHandler.GetTotal)
		api.POST("/views", pageviewHandler.IncrementTotal)
		api.GET("/views/:slug", pageviewHandler.GetPost)
		api.POST("/views/:slug", pageviewHandler.IncrementPost)

		// 最近访客
		api.GET("/visitor", visitorHandler.GetLastVisitor)

		// 反应：读取不限流，变更按IP限流
		api.GET("/reactions", reactionHandler.GetReactions)
		api.PATCH("/reactions", ratelimit.Middleware(limiter), reactionHandler.PatchReaction)

		// 会话登出
		api.POST("/auth/sign-out", user.SignOut(cfg.Auth.SignOutURL))

		// 评论
		comments := api.Group("/comments")
		{
			comments.GET("/:postId", commentHandler.ListComments)
			comments.POST("/:postId",
				user.LoadUserMiddleware(cfg.Auth.SessionSecret),
				user.RequireUser(),
				commentHandler.CreateComment)
		}

		// 订阅
		api.POST("/newsletter", newsletterHandler.Subscribe)

		// 外链图标与动态占位
		api.GET("/favicon", faviconHandler.GetFavicon)
		api.GET("/activity", activity.GetActivity)
	}

	return nil
}
