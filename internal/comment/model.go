package comment

import "time"

// Body 是评论的正文结构。
// BlockID标记评论锚定的文章段落，站内划词评论会带上它。
type Body struct {
	BlockID *string `json:"blockId,omitempty"`
	Text    string  `json:"text"`
}

// UserInfo 是评论发表时刻的用户展示信息快照。
// 存快照而不是实时查身份服务，保证历史评论的展示稳定。
type UserInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

// Comment 定义了评论在SQL数据库中的持久化模型。
type Comment struct {
	ID uint `gorm:"primarykey"`

	// PostID 是评论所属文章在CMS中的文档ID
	PostID string `gorm:"index;not null;type:varchar(64)"`

	// UserID 是身份服务中的用户ID
	UserID string `gorm:"index;not null;type:varchar(64)"`

	// UserInfo 和 Body 以JSON形式落库
	UserInfo UserInfo `gorm:"serializer:json"`
	Body     Body     `gorm:"serializer:json"`

	// ParentID 指向被回复的评论，顶层评论为空
	ParentID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
