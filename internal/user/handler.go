package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignOut 处理 POST /api/auth/sign-out。
// 清除会话Cookie并告诉前端登出后应跳转的地址。
// 会话JWT由身份服务签发，后端只负责让浏览器忘掉它。
func SignOut(signOutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"url": signOutURL})
	}
}
