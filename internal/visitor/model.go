package visitor

// 定义与访客槽位相关的Redis键名
const (
	// CurrentVisitorKey 存放最近一次合格请求写入的访客记录
	CurrentVisitorKey = "current_visitor"
	// LastVisitorKey 存放上一位访客的记录，由读取方轮换写入
	LastVisitorKey = "last_visitor"
)

// Record 描述一位访客的地理信息，用于页脚的“最近访客”小组件。
type Record struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
	Flag    string `json:"flag"`
}

// DefaultRecord 是没有任何历史访客时返回的缺省记录。
func DefaultRecord() Record {
	return Record{Country: "US", Flag: "🇺🇸"}
}
