package xlog

import (
	"log/slog"
	"time"
)

// 启动日志、诊断日志和分类日志共用的属性 key
const (
	KeyError     = "error"
	KeyStack     = "stack"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyRunID     = "run_id"
	KeyPID       = "pid"
	KeyComponent = "component"
)

// Err 错误属性；err 为 nil 时返回空属性，行中不输出
//
//	logger.Error(ctx, "copy failed", xlog.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 耗时，以 time.Duration 的字符串形式输出（如 "1.5s"）
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 产生日志的组件，如 "xboot"、"xrun"
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Count 计数，常与 [Metric] 一起使用
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// RunID 本次运行的 ID，启动日志中输出一次
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

// PID 进程号
func PID(pid int) slog.Attr {
	return slog.Int(KeyPID, pid)
}
