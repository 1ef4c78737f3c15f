package favicon

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/xinrengui/blog-backend/internal/platform/database"
)

const (
	// cacheTTL 与前端的revalidate周期一致，3天
	cacheTTL = 3 * 24 * time.Hour

	// iconCacheKeyPrefix 是“目标站点→图标地址”解析结果的Redis缓存键前缀
	iconCacheKeyPrefix = "favicon:"

	// maxIconBytes 限制代理的图标体积，防止被超大响应拖垮
	maxIconBytes = 1 << 20
)

// Handler 暴露外链图标代理接口。
// 解析流程：预置表 → Redis缓存 → 抓取目标页面的<link rel>标签。
type Handler struct {
	rdb    *redis.Client
	client *http.Client
}

// NewHandler 创建图标接口的处理器。
func NewHandler(rdb *redis.Client) *Handler {
	return &Handler{
		rdb:    rdb,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetFavicon 处理 GET /api/favicon?url=<domain>。
// 任何一步失败都退回兜底空白图标，响应始终带3天的缓存头。
func (h *Handler) GetFavicon(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	iconURL := h.resolveIconURL(c, target)
	h.proxyIcon(c, iconURL)
}

// resolveIconURL 确定目标站点的图标地址。
func (h *Handler) resolveIconURL(c *gin.Context, target string) string {
	// 1. 预置表优先
	if icon, ok := PredefinedIcon(target); ok {
		return icon
	}

	// 2. Redis缓存的历史解析结果
	cacheKey := iconCacheKeyPrefix + target
	useCache := database.IsRedisHealthy()
	if useCache {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil && cached != "" {
			return cached
		}
	}

	// 3. 抓取目标页面，解析图标链接
	iconURL := h.scrapeIconURL(c, target)

	if useCache {
		if err := h.rdb.Set(c.Request.Context(), cacheKey, iconURL, cacheTTL).Err(); err != nil {
			fmt.Printf("图标接口警告: 写入缓存 %s 失败: %v\n", cacheKey, err)
		}
	}
	return iconURL
}

// scrapeIconURL 抓取https://<target>页面并解析图标链接标签。
func (h *Handler) scrapeIconURL(c *gin.Context, target string) string {
	pageURL, err := url.Parse("https://" + target)
	if err != nil {
		return BlankIconURL
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return BlankIconURL
	}
	req.Header.Set("Content-Type", "text/html")

	resp, err := h.client.Do(req)
	if err != nil {
		fmt.Printf("图标接口警告: 抓取 %s 失败: %v\n", target, err)
		return BlankIconURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BlankIconURL
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return BlankIconURL
	}

	// 按原站优先级：apple-touch-icon > icon > shortcut icon
	href := ""
	for _, selector := range []string{
		`link[rel="apple-touch-icon"]`,
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
	} {
		if value, ok := doc.Find(selector).First().Attr("href"); ok && value != "" {
			href = value
			break
		}
	}
	if href == "" {
		return BlankIconURL
	}

	// 相对路径相对于目标页面解析
	iconURL, err := pageURL.Parse(href)
	if err != nil {
		return BlankIconURL
	}
	return iconURL.String()
}

// proxyIcon 抓取图标本体并原样返回给前端。
func (h *Handler) proxyIcon(c *gin.Context, iconURL string) {
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheTTL.Seconds())))

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, iconURL, nil)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	resp, err := h.client.Do(req)
	if err != nil {
		fmt.Printf("图标接口警告: 拉取图标 %s 失败: %v\n", iconURL, err)
		c.Status(http.StatusNotFound)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Status(http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	c.Data(http.StatusOK, contentType, body)
}
