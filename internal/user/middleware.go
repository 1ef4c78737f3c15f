package user

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName 是身份服务写入浏览器的会话Cookie名
const SessionCookieName = "__session"

// LoadUserMiddleware 解析会话JWT并把用户身份放入Gin上下文。
// 会话缺失或无效时不拦截请求，只是不设置身份；
// 需要登录的接口再配合RequireUser使用。
func LoadUserMiddleware(sessionSecret string) gin.HandlerFunc {
	secret := []byte(sessionSecret)

	return func(c *gin.Context) {
		tokenStr := sessionToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		identity := Identity{
			ID:        stringClaim(claims, "sub"),
			FirstName: stringClaim(claims, "first_name"),
			LastName:  stringClaim(claims, "last_name"),
			ImageURL:  stringClaim(claims, "image_url"),
			Email:     stringClaim(claims, "email"),
		}
		if identity.ID != "" {
			c.Set(IdentityKey, identity)
		}

		c.Next()
	}
}

// RequireUser 保护需要登录的接口，没有有效身份时以401中止。
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := FromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Next()
	}
}

// sessionToken 依次尝试会话Cookie和Authorization头。
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
