package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

var (
	_ LoggerWithLevel = (*xlogger)(nil)
	_ Flusher         = (*xlogger)(nil)
)

// maxStackSize Stack 记录的堆栈上限
const maxStackSize = 64 * 1024

// xlogger Logger 的实现，所有级别方法最终都调用 logWithSkip
type xlogger struct {
	handler   slog.Handler
	levelVar  *slog.LevelVar
	addSource bool
	flush     func() error // 异步输出的刷新函数，同步输出时为 nil
	errs      *errorState  // 派生 logger 共享
}

// errorState Handler.Handle 失败的计数与回调
type errorState struct {
	onError func(error)
	count   atomic.Uint64
	busy    atomic.Bool // 回调执行中，回调里再出错只计数
}

func newErrorState(onError func(error)) *errorState {
	return &errorState{onError: onError}
}

// report 计数并调用回调；回调 panic 被吞掉并计数
func (e *errorState) report(err error) {
	e.count.Add(1)
	if e.onError == nil || !e.busy.CompareAndSwap(false, true) {
		return
	}
	defer e.busy.Store(false)
	defer func() {
		if recover() != nil {
			e.count.Add(1)
		}
	}()
	e.onError(err)
}

// callerPC 返回 skip 层之上的调用位置；未启用调用位置时为 0
//
//go:noinline
func (l *xlogger) callerPC(skip int) uintptr {
	if !l.addSource {
		return 0
	}
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	return pcs[0]
}

// logWithSkip 构造记录并交给 handler
//
// skip 为 logWithSkip 与业务代码之间的 xlog 帧数：l.Info 为 1，
// xlog.Info 与分类辅助函数为 2。
// 帧序：Callers(0) callerPC(1) logWithSkip(2) xlog 帧(3..2+skip) 业务代码(3+skip)。
//
//go:noinline
func (l *xlogger) logWithSkip(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr, skip int) {
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, l.callerPC(3+skip))
	r.AddAttrs(attrs...)
	l.handle(ctx, r)
}

// stackWithSkip 同 logWithSkip，固定 Error 级别并附带当前协程堆栈
//
//go:noinline
func (l *xlogger) stackWithSkip(ctx context.Context, msg string, attrs []slog.Attr, skip int) {
	if !l.handler.Enabled(ctx, slog.LevelError) {
		return
	}
	r := slog.NewRecord(time.Now(), slog.LevelError, msg, l.callerPC(3+skip))
	r.AddAttrs(attrs...)
	r.AddAttrs(slog.String(KeyStack, currentStack()))
	l.handle(ctx, r)
}

func (l *xlogger) handle(ctx context.Context, r slog.Record) {
	if err := l.handler.Handle(ctx, r); err != nil && l.errs != nil {
		l.errs.report(err)
	}
}

// currentStack 当前协程的堆栈，缓冲区不足时翻倍，最多 maxStackSize
func currentStack() string {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) || len(buf) >= maxStackSize {
			return string(buf[:n])
		}
		buf = make([]byte, min(2*len(buf), maxStackSize))
	}
}

// Trace 实现 Logger
func (l *xlogger) Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logWithSkip(ctx, slog.Level(LevelTrace), msg, attrs, 1)
}

// Debug 实现 Logger
func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logWithSkip(ctx, slog.LevelDebug, msg, attrs, 1)
}

// Info 实现 Logger
func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logWithSkip(ctx, slog.LevelInfo, msg, attrs, 1)
}

// Warn 实现 Logger
func (l *xlogger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logWithSkip(ctx, slog.LevelWarn, msg, attrs, 1)
}

// Error 实现 Logger
func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logWithSkip(ctx, slog.LevelError, msg, attrs, 1)
}

// Stack 实现 Logger，附带 key 为 [KeyStack] 的堆栈属性
func (l *xlogger) Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.stackWithSkip(ctx, msg, attrs, 1)
}

// derive 共享级别、错误状态和刷新函数，只替换 handler
func (l *xlogger) derive(h slog.Handler) *xlogger {
	d := *l
	d.handler = h
	return &d
}

// With 实现 Logger
func (l *xlogger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return l.derive(l.handler.WithAttrs(attrs))
}

// WithGroup 实现 Logger
func (l *xlogger) WithGroup(name string) Logger {
	if name == "" {
		return l
	}
	return l.derive(l.handler.WithGroup(name))
}

// SetLevel 实现 Leveler，对所有派生 logger 生效
func (l *xlogger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

// GetLevel 实现 Leveler
func (l *xlogger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

// Enabled 实现 Leveler
func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	return l.handler.Enabled(ctx, slog.Level(level))
}

// Flush 等待异步输出处理完已记录的日志，同步输出时为空操作
func (l *xlogger) Flush() error {
	if l.flush == nil {
		return nil
	}
	return l.flush()
}
