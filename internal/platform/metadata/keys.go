package metadata

// --- SQL Keys ---
// 这些键用于metadata表的key列。
const (
	// snapshotKeyPrefix 是计数器快照键的前缀，后接对应的Redis键名。
	snapshotKeyPrefix = "snapshot:"

	// LastSnapshotTimeKey 记录最近一次成功快照的时间（RFC3339）。
	LastSnapshotTimeKey = "last_snapshot_time"
)

// SnapshotKey 返回某个Redis计数器键在metadata表中对应的快照键。
func SnapshotKey(redisKey string) string {
	return snapshotKeyPrefix + redisKey
}
