package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xinrengui/blog-backend/internal/platform/config"
)

// Post 是评论接口需要的文章摘要信息。
type Post struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

// postByIDQuery 是按文档ID查询文章的GROQ语句
const postByIDQuery = `*[_type == "post" && _id == $id][0]{ "slug": slug.current, title, "imageUrl": mainImage.asset->url }`

// Client 是内容CMS（Sanity）查询接口的只读客户端。
// 它只负责把GROQ查询发给数据集的HTTP端点并解包result字段。
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 根据配置创建内容客户端。
// useCdn开启时走apicdn域名，查询结果可能有分钟级延迟。
func NewClient(cfg config.ContentConfig) *Client {
	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	return &Client{
		baseURL: fmt.Sprintf("https://%s.%s/v%s/data/query/%s", cfg.ProjectID, host, cfg.APIVersion, cfg.Dataset),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Query 执行一条GROQ查询并返回原始的result JSON。
// params中的值会被JSON编码后以$开头的参数传递。
func (c *Client) Query(ctx context.Context, groq string, params map[string]string) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("查询内容服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("内容服务返回状态码 %d", resp.StatusCode)
	}

	var payload struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析内容服务响应失败: %w", err)
	}
	return payload.Result, nil
}

// PostByID 按文档ID查询一篇文章，文章不存在时返回nil。
func (c *Client) PostByID(ctx context.Context, id string) (*Post, error) {
	result, err := c.Query(ctx, postByIDQuery, map[string]string{"id": id})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}

	var post Post
	if err := json.Unmarshal(result, &post); err != nil {
		return nil, fmt.Errorf("解析文章 %s 失败: %w", id, err)
	}
	if post.Slug == "" {
		return nil, nil
	}
	return &post, nil
}
