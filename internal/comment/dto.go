package comment

import (
	"time"

	"github.com/xinrengui/blog-backend/pkg/hashid"
)

// DTO 是评论对外的传输结构。
// 数字主键经过hashid混淆，前端只见到短字符串ID。
type DTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId,omitempty"`
	UserID    string    `json:"userId"`
	UserInfo  UserInfo  `json:"userInfo"`
	Body      Body      `json:"body"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// toDTO 把一条评论记录转换为对外DTO。includePostID控制是否携带文章ID：
// 列表接口按文章查询，逐条重复postId没有意义。
func toDTO(codec *hashid.Codec, c *Comment, includePostID bool) (DTO, error) {
	encodedID, err := codec.Encode(c.ID)
	if err != nil {
		return DTO{}, err
	}

	dto := DTO{
		ID:        encodedID,
		UserID:    c.UserID,
		UserInfo:  c.UserInfo,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
	if includePostID {
		dto.PostID = c.PostID
	}
	if c.ParentID != nil {
		encodedParent, err := codec.Encode(*c.ParentID)
		if err != nil {
			return DTO{}, err
		}
		dto.ParentID = &encodedParent
	}
	return dto, nil
}
