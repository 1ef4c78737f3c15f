package reaction

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler 暴露反应向量的HTTP接口。
type Handler struct {
	store Store
	cache TagInvalidator
}

// NewHandler 创建反应接口的处理器。
func NewHandler(store Store, cache TagInvalidator) *Handler {
	return &Handler{store: store, cache: cache}
}

// GetReactions 处理 GET /api/reactions?id=<itemID>。
// 未见过的文章返回[0,0,0,0]并落库该基线。读取不限流。
func (h *Handler) GetReactions(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.String(http.StatusBadRequest, "Missing id")
		return
	}

	vector, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		fmt.Printf("反应接口警告: 读取 %s 失败: %v\n", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, vector)
}

// PatchReaction 处理 PATCH /api/reactions?id=<itemID>&index=<0-3>。
// 经过限流中间件后才会到达这里；成功自增后让渲染缓存标签失效。
func (h *Handler) PatchReaction(c *gin.Context) {
	id := c.Query("id")
	indexStr := c.Query("index")
	if id == "" || indexStr == "" {
		c.String(http.StatusBadRequest, "Missing id or index")
		return
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		c.String(http.StatusBadRequest, "Missing id or index")
		return
	}

	vector, err := h.store.IncrementAt(c.Request.Context(), id, index)
	if err != nil {
		if errors.Is(err, ErrInvalidIndex) {
			c.String(http.StatusBadRequest, "Missing id or index")
			return
		}
		fmt.Printf("反应接口警告: 自增 %s[%d] 失败: %v\n", id, index, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	// 自增成功后使标签失效，保证后续读取观察到新向量
	if err := h.cache.Invalidate(c.Request.Context(), CacheTag(id)); err != nil {
		fmt.Printf("反应接口警告: 失效缓存标签 %s 失败: %v\n", CacheTag(id), err)
	}

	c.JSON(http.StatusOK, gin.H{"data": vector})
}
