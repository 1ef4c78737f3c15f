package favicon

import "regexp"

// faviconMapper 把常访问的域名映射到预置的图标地址，
// 命中时不需要抓取对方页面。
var faviconMapper = map[string]string{
	`((?:zolplay\.cn)|(?:zolplay\.com)|(?:cn\.zolplay\.com))`: "https://xinrengui.eu.org/favicons/zolplay.png",
	`(?:github\.com)`:  "https://xinrengui.eu.org/favicons/github.png",
	`((?:t\.co)|(?:twitter\.com)|(?:x\.com))`: "https://xinrengui.eu.org/favicons/twitter.png",
	`coolshell\.cn`: "https://xinrengui.eu.org/favicons/coolshell.png",
	`vercel\.com`:   "https://xinrengui.eu.org/favicons/vercel.png",
	`nextjs\.org`:   "https://xinrengui.eu.org/favicons/nextjs.png",
}

// BlankIconURL 是所有途径都拿不到图标时的兜底图。
const BlankIconURL = "https://xinrengui.eu.org/favicon_blank.png"

var compiledMapper = func() map[*regexp.Regexp]string {
	m := make(map[*regexp.Regexp]string, len(faviconMapper))
	for pattern, icon := range faviconMapper {
		re := regexp.MustCompile(`^(?:https?://)?(?:[^@/\n]+@)?(?:www\.)?` + pattern)
		m[re] = icon
	}
	return m
}()

// PredefinedIcon 返回预置表中匹配url的图标地址。
func PredefinedIcon(url string) (string, bool) {
	for re, icon := range compiledMapper {
		if re.MatchString(url) {
			return icon, true
		}
	}
	return "", false
}
