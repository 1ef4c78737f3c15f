package comment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xinrengui/blog-backend/internal/user"
)

// Handler 暴露评论相关的HTTP接口。
type Handler struct {
	service *Service
}

// NewHandler 创建评论接口的处理器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListComments 处理 GET /api/comments/:postId。
// 返回按创建时间升序的评论列表，ID均为混淆后的短字符串。
func (h *Handler) ListComments(c *gin.Context) {
	postID := c.Param("postId")

	dtos, err := h.service.ListByPost(c.Request.Context(), postID)
	if err != nil {
		fmt.Printf("评论接口警告: %v\n", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// CreateComment 处理 POST /api/comments/:postId。
// 路由上已挂RequireUser，走到这里一定有有效身份。
func (h *Handler) CreateComment(c *gin.Context) {
	identity, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create comment"})
		return
	}

	dto, err := h.service.Create(c.Request.Context(), c.Param("postId"), identity, req)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "Post not found"})
			return
		}
		fmt.Printf("评论接口警告: %v\n", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create comment"})
		return
	}
	c.JSON(http.StatusOK, dto)
}
