package visitor

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xinrengui/blog-backend/pkg/geo"
)

// GeoMiddleware 从CDN注入的请求头中提取访客地理信息，
// 写入“当前访客”槽位。只处理页面请求，API路由不算访问。
// 写入失败只记录日志，绝不影响请求本身。
func GeoMiddleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		country := geo.CountryFromRequest(c.Request)
		if country != "" {
			record := Record{
				Country: country,
				City:    geo.CityFromRequest(c.Request),
				Flag:    geo.FlagEmoji(country),
			}
			if err := store.RecordCurrent(c.Request.Context(), record); err != nil {
				fmt.Printf("访客记录警告: 写入当前访客失败: %v\n", err)
			}
		}

		c.Next()
	}
}

// BlockedIPMiddleware 拦截封禁名单中的IP。
// API请求返回JSON 403，页面请求返回纯403。
func BlockedIPMiddleware(blockedIPs []string) gin.HandlerFunc {
	blocked := make(map[string]struct{}, len(blockedIPs))
	for _, ip := range blockedIPs {
		blocked[ip] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(blocked) == 0 {
			c.Next()
			return
		}
		if _, hit := blocked[c.ClientIP()]; !hit {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You have been blocked."})
			return
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}
