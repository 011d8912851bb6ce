package xrotate

import "time"

// Trigger 轮转触发原因
type Trigger int

const (
	// TriggerSignal 外部信号请求轮转
	TriggerSignal Trigger = iota + 1

	// TriggerTime 文件组超过有效期
	TriggerTime

	// TriggerSize 目标文件写入后将超过大小上限
	TriggerSize
)

// String 返回触发原因的字符串表示
func (t Trigger) String() string {
	switch t {
	case TriggerSignal:
		return "signal"
	case TriggerTime:
		return "time"
	case TriggerSize:
		return "size"
	default:
		return "unknown"
	}
}

// nextRollTime 计算文件组有效期：now 按 interval 在本地时间上截断后加一个 interval
//
// interval 为一天时结果是下一个本地零点。
// time.Truncate 按 UTC 零点对齐，这里先平移本地时区偏移再截断。
func nextRollTime(now time.Time, interval time.Duration) time.Time {
	_, offset := now.Zone()
	shift := time.Duration(offset) * time.Second
	start := now.Add(shift).Truncate(interval).Add(-shift)
	return start.Add(interval)
}

// exceedsSize 写入 n 字节后是否超过上限
func exceedsSize(written int64, n int, limit int64) bool {
	return written+int64(n) > limit
}
