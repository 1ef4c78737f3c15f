package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware 返回一个按客户端IP限流的Gin中间件。
// 达到上限时直接以429中止，被保护的变更不会执行任何一步。
// 限流器自身出错时放行并记录日志：被保护的只是一次反应点击，
// 拒绝服务比放过几次点击的代价更高。
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			fmt.Printf("限流警告: 检查IP %s 失败，本次放行: %v\n", c.ClientIP(), err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
