package newsletter

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// subscribeRequest 是订阅接口的请求体，邮箱格式由binding校验。
type subscribeRequest struct {
	Data struct {
		Email string `json:"email" binding:"required,email"`
	} `json:"data" binding:"required"`
}

// Handler 暴露订阅接口。
type Handler struct {
	service *Service
}

// NewHandler 创建订阅接口的处理器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Subscribe 处理 POST /api/newsletter。
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), req.Data.Email); err != nil {
		fmt.Printf("订阅接口警告: %v\n", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
