package comment

import (
	"fmt"
	"html"
	"strings"

	"github.com/xinrengui/blog-backend/internal/content"
	"github.com/xinrengui/blog-backend/internal/user"
)

// replyEmailHTML 渲染回复通知邮件的正文。
func replyEmailHTML(post *content.Post, baseURL string, replier user.Identity, text string) string {
	postLink := strings.TrimRight(baseURL, "/") + "/blog/" + post.Slug
	replierName := strings.TrimSpace(replier.FirstName + " " + replier.LastName)

	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:520px;margin:0 auto">`)
	if post.ImageURL != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="width:100%%;border-radius:8px" />`,
			html.EscapeString(post.ImageURL), html.EscapeString(post.Title))
	}
	fmt.Fprintf(&b, `<h2>%s 回复了你在《%s》下的评论</h2>`,
		html.EscapeString(replierName), html.EscapeString(post.Title))
	fmt.Fprintf(&b, `<blockquote style="border-left:3px solid #ddd;padding-left:12px;color:#555">%s</blockquote>`,
		html.EscapeString(text))
	fmt.Fprintf(&b, `<p><a href="%s">前往查看</a></p>`, html.EscapeString(postLink))
	b.WriteString(`</div>`)
	return b.String()
}
