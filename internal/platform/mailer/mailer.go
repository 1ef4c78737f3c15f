package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message 描述一封待发送的事务性邮件。
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender 抽象了事务性邮件的发送。
// 生产环境走Resend，开发模式和测试使用本地替身。
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendSender 通过Resend发送邮件。
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender 创建Resend邮件发送器。
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("发送邮件到 %s 失败: %w", msg.To, err)
	}
	return nil
}

// LogSender 只打印日志不真正发信，用于开发模式。
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	fmt.Printf("邮件(未发送/开发模式): to=%s subject=%q\n", msg.To, msg.Subject)
	return nil
}
