package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Directory 抽象了向身份服务查询用户资料的能力。
// 评论回复通知需要查出父评论作者的邮箱。
type Directory interface {
	// PrimaryEmail 返回用户的主邮箱；用户不存在或没有邮箱时返回空字符串。
	PrimaryEmail(ctx context.Context, userID string) (string, error)
}

const clerkAPIBase = "https://api.clerk.com/v1"

// ClerkDirectory 通过Clerk的后端API查询用户资料。
type ClerkDirectory struct {
	apiKey string
	client *http.Client
}

// NewClerkDirectory 创建Clerk用户目录客户端。
func NewClerkDirectory(apiKey string) *ClerkDirectory {
	return &ClerkDirectory{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *ClerkDirectory) PrimaryEmail(ctx context.Context, userID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clerkAPIBase+"/users/"+userID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("查询用户 %s 失败: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("查询用户 %s 失败: 状态码 %d", userID, resp.StatusCode)
	}

	var payload struct {
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
		EmailAddresses        []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("解析用户 %s 的资料失败: %w", userID, err)
	}

	for _, addr := range payload.EmailAddresses {
		if addr.ID == payload.PrimaryEmailAddressID {
			return addr.EmailAddress, nil
		}
	}
	return "", nil
}
