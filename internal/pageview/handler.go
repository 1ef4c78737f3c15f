package pageview

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 暴露浏览量相关的HTTP接口。
// 自增放在POST上，GET保持只读，这样前端的缓存读取不会产生副作用。
type Handler struct {
	service *Service
}

// NewHandler 创建浏览量接口的处理器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetTotal 处理 GET /api/views，返回站点总浏览量。
func (h *Handler) GetTotal(c *gin.Context) {
	views := h.service.Get(c.Request.Context(), TotalViewsKey)
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// IncrementTotal 处理 POST /api/views，记录一次站点浏览并返回最新总量。
func (h *Handler) IncrementTotal(c *gin.Context) {
	views := h.service.IncrementAndGet(c.Request.Context(), TotalViewsKey)
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// GetPost 处理 GET /api/views/:slug，返回单篇文章的浏览量。
func (h *Handler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	views := h.service.Get(c.Request.Context(), PostViewsKey(slug))
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// IncrementPost 处理 POST /api/views/:slug，记录一次文章浏览并返回最新计数。
func (h *Handler) IncrementPost(c *gin.Context) {
	slug := c.Param("slug")
	views := h.service.IncrementAndGet(c.Request.Context(), PostViewsKey(slug))
	c.JSON(http.StatusOK, gin.H{"views": views})
}
