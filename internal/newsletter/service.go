package newsletter

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/xinrengui/blog-backend/internal/platform/mailer"
	"gorm.io/gorm"
)

// Service 封装订阅流程：去重、生成一次性令牌、发送确认邮件。
type Service struct {
	db      *gorm.DB
	sender  mailer.Sender
	baseURL string
	// sendAndPersist 为false时（开发模式）既不发信也不落库，
	// 与原站只在生产环境产生副作用的行为一致
	sendAndPersist bool
}

// NewService 创建订阅服务。
func NewService(db *gorm.DB, sender mailer.Sender, baseURL string, sendAndPersist bool) *Service {
	return &Service{
		db:             db,
		sender:         sender,
		baseURL:        baseURL,
		sendAndPersist: sendAndPersist,
	}
}

// Subscribe 处理一次订阅请求。
// 幂等：邮箱已存在时直接成功返回，不发重复邮件、不插重复行。
func (s *Service) Subscribe(ctx context.Context, email string) error {
	var existing Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // 已订阅
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("查询订阅者失败: %w", err)
	}

	if !s.sendAndPersist {
		return nil
	}

	// 生成一次性确认令牌
	token := uuid.NewString()

	confirmLink := strings.TrimRight(s.baseURL, "/") + "/confirm/" + token
	msg := mailer.Message{
		To:      email,
		Subject: "来自 辛壬癸 的订阅确认",
		HTML: fmt.Sprintf(
			`<div style="font-family:sans-serif;max-width:520px;margin:0 auto">`+
				`<h2>确认订阅</h2>`+
				`<p>点击下面的链接完成订阅，之后每期更新都会送达你的邮箱。</p>`+
				`<p><a href="%s">确认订阅</a></p>`+
				`<p style="color:#888">如果这不是你的操作，忽略这封邮件即可。</p>`+
				`</div>`,
			html.EscapeString(confirmLink)),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return err
	}

	record := Subscriber{Email: email, Token: token}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("写入订阅者失败: %w", err)
	}
	return nil
}
