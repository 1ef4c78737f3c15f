package geo

import (
	"net/http"
	"net/url"
	"strings"
)

// FlagEmoji 根据ISO 3166-1 alpha-2国家代码计算对应的旗帜emoji。
// 旗帜emoji由两个区域指示符号拼接而成，无需维护国家对照表。
func FlagEmoji(countryCode string) string {
	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(cc) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range cc {
		if r < 'A' || r > 'Z' {
			return ""
		}
		// 区域指示符号从U+1F1E6('A')开始连续排列
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}

// CountryFromRequest 从CDN注入的请求头中提取访客的国家代码。
// 依次尝试Vercel和Cloudflare的约定头，取不到时返回空字符串。
func CountryFromRequest(r *http.Request) string {
	if country := r.Header.Get("x-vercel-ip-country"); country != "" {
		return country
	}
	return r.Header.Get("cf-ipcountry")
}

// CityFromRequest 从请求头中提取访客所在城市。
// Vercel会对城市名做URL编码（如 S%C3%A3o%20Paulo），这里负责还原。
func CityFromRequest(r *http.Request) string {
	city := r.Header.Get("x-vercel-ip-city")
	if city == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(city); err == nil {
		return decoded
	}
	return city
}
