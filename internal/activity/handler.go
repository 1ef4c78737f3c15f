package activity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetActivity 处理 GET /api/activity。
// 占位接口，保持与前端的契约，动态数据源接入后再填充。
func GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"app": "Example data"})
}
