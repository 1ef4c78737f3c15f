package newsletter

import "time"

// Subscriber 定义了订阅者在SQL数据库中的持久化模型。
type Subscriber struct {
	ID uint `gorm:"primarykey"`

	// Email 是订阅邮箱，全表唯一
	Email string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Token 是确认订阅用的一次性令牌
	Token string `gorm:"not null;type:varchar(64)"`

	// SubscribedAt 记录用户点击确认链接的时间，未确认时为空
	SubscribedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
