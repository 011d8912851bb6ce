package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// 进程级 Logger。xapp 在日志初始化后通过 SetDefault 安装，
// 之前（以及测试中）惰性构建一个写 stderr 的默认 Logger。
var (
	globalLogger atomic.Pointer[LoggerWithLevel]
	globalMu     sync.Mutex // 串行化惰性构建与重置

	// newBuilder 构建默认 Logger，测试中可替换
	newBuilder = New
)

// Default 返回进程级 Logger
//
// 未设置时按默认配置构建：stderr、Info 级别、text 格式。
func Default() LoggerWithLevel {
	if l := globalLogger.Load(); l != nil {
		return *l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if l := globalLogger.Load(); l != nil {
		return *l
	}
	l := buildDefault()
	globalLogger.Store(&l)
	return l
}

// buildDefault 默认配置构建失败时退回到不带任何选项的 text handler
func buildDefault() LoggerWithLevel {
	l, _, err := newBuilder().Build()
	if err == nil {
		return l
	}
	fmt.Fprintf(os.Stderr, "xlog: default logger: %v, falling back to plain text\n", err)
	return &xlogger{
		handler:  slog.NewTextHandler(os.Stderr, nil),
		levelVar: new(slog.LevelVar),
		errs:     newErrorState(nil),
	}
}

// SetDefault 替换进程级 Logger，nil 被忽略
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	globalLogger.Store(&l)
}

// ResetDefault 清除进程级 Logger，下次 Default 重新构建
func ResetDefault() {
	globalMu.Lock()
	globalLogger.Store(nil)
	globalMu.Unlock()
}

// logFrom 以 level 记录到 l，调用位置取调用 logFrom 的 xlog 导出函数的调用方
//
// 非 xlog 实现的 Logger 无法跳帧，按级别调用对应方法。
//
//go:noinline
func logFrom(ctx context.Context, l Logger, level slog.Level, msg string, attrs []slog.Attr) {
	if xl, ok := l.(*xlogger); ok {
		xl.logWithSkip(ctx, level, msg, attrs, 2)
		return
	}
	switch {
	case level < slog.LevelDebug:
		l.Trace(ctx, msg, attrs...)
	case level < slog.LevelInfo:
		l.Debug(ctx, msg, attrs...)
	case level < slog.LevelWarn:
		l.Info(ctx, msg, attrs...)
	case level < slog.LevelError:
		l.Warn(ctx, msg, attrs...)
	default:
		l.Error(ctx, msg, attrs...)
	}
}

// Trace 使用进程级 Logger 记录 Trace 级别日志
func Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	logFrom(ctx, Default(), slog.Level(LevelTrace), msg, attrs)
}

// Debug 使用进程级 Logger 记录 Debug 级别日志
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	logFrom(ctx, Default(), slog.LevelDebug, msg, attrs)
}

// Info 使用进程级 Logger 记录 Info 级别日志
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	logFrom(ctx, Default(), slog.LevelInfo, msg, attrs)
}

// Warn 使用进程级 Logger 记录 Warn 级别日志
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logFrom(ctx, Default(), slog.LevelWarn, msg, attrs)
}

// Error 使用进程级 Logger 记录 Error 级别日志
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	logFrom(ctx, Default(), slog.LevelError, msg, attrs)
}

// Stack 使用进程级 Logger 记录带堆栈的错误日志
func Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		xl.stackWithSkip(ctx, msg, attrs, 1)
		return
	}
	l.Stack(ctx, msg, attrs...)
}

// Flush 刷新进程级 Logger 的异步输出，未实现 [Flusher] 时为空操作
func Flush() error {
	if f, ok := Default().(Flusher); ok {
		return f.Flush()
	}
	return nil
}
