package xlog

import (
	"log/slog"
	"strings"
	"time"
)

// lineTimeLayout 日志行的时间部分：本地时间，精确到微秒，不含日期
//
// 日期体现在文件名中，文件按天轮转。
const lineTimeLayout = "15:04:05.000000"

// FormatLine 把一条日志格式化为文件中的一行
//
// 格式：<HH:MM:SS.ffffff> [<级别，左对齐补齐 5 位>] [<来源>] <消息>\n
func FormatLine(t time.Time, level Level, origin, msg string) string {
	sev := severity(slog.Level(level))

	var b strings.Builder
	b.Grow(len(lineTimeLayout) + len(origin) + len(msg) + 16)
	b.WriteString(t.Local().Format(lineTimeLayout))
	b.WriteString(" [")
	b.WriteString(sev)
	for i := len(sev); i < 5; i++ {
		b.WriteByte(' ')
	}
	b.WriteString("] [")
	b.WriteString(origin)
	b.WriteString("] ")
	b.WriteString(msg)
	b.WriteByte('\n')
	return b.String()
}
