package xlog

import (
	"context"
	"log/slog"
)

// Logger 日志接口，ctx 在前，属性只接受 slog.Attr
//
// Stack 以 Error 级别记录，并附带当前协程的堆栈（key 为 [KeyStack]）。
// With 与 WithGroup 派生的 Logger 与父级共享级别，SetLevel 同时生效。
type Logger interface {
	Trace(ctx context.Context, msg string, attrs ...slog.Attr)
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
	Stack(ctx context.Context, msg string, attrs ...slog.Attr)

	With(attrs ...slog.Attr) Logger
	WithGroup(name string) Logger
}

// Leveler 运行时调整级别，配置热更新 log_level 时使用
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level

	// Enabled 报告 level 是否会输出，可在构造开销大的属性前检查
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel Build 的返回类型
type LoggerWithLevel interface {
	Logger
	Leveler
}

// Flusher 由异步输出（SetSink）的 Logger 实现
//
// Flush 返回时此前记录的日志已交给 Sink 并刷新到文件。
type Flusher interface {
	Flush() error
}
