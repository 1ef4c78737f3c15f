package visitor

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 暴露“最近访客”小组件的数据接口。
type Handler struct {
	store Store
}

// NewHandler 创建访客接口的处理器。
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetLastVisitor 处理 GET /api/visitor。
// 返回查看者之前的那位访客，并顺带完成槽位轮换。
// 存储失效时退回缺省记录，响应始终是200。
func (h *Handler) GetLastVisitor(c *gin.Context) {
	record, err := h.store.RotateAndGet(c.Request.Context())
	if err != nil {
		fmt.Printf("访客记录警告: 轮换读取失败: %v\n", err)
		record = DefaultRecord()
	}
	c.JSON(http.StatusOK, record)
}
