package pageview

// 定义与浏览量相关的Redis键名
const (
	// TotalViewsKey 是站点总浏览量计数器
	TotalViewsKey = "total_page_views"

	// PostViewsKeyPrefix 是单篇文章浏览量计数器的键名前缀，后接文章slug
	PostViewsKeyPrefix = "post_views:"
)

// PostViewsKey 返回某篇文章浏览量计数器的完整键名。
func PostViewsKey(slug string) string {
	return PostViewsKeyPrefix + slug
}
