package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// Builder 日志配置构建器
//
// 输出方式三选一：SetOutput（同步写 io.Writer）、SetRotation（同步写单个
// lumberjack 文件）、SetSink（格式化为单行后经分发器异步写入 Sink）。
// 后设置的覆盖先设置的。
type Builder struct {
	output    io.Writer
	level     Level
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	origin    string
	rotator   xrotate.Rotator
	sink      xrotate.Sink
	sinkOpts  []DispatcherOption
	onError   func(error) // 内部错误回调（Handler.Handle 失败时）
	err       error
}

// New 创建配置构建器
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	return &Builder{
		output:   os.Stderr,
		level:    LevelInfo,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标
func (b *Builder) SetOutput(w io.Writer) *Builder {
	b.output = w
	b.rotator = nil
	b.sink = nil
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level Level) *Builder {
	b.level = level
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置同步输出的格式：text 或 json
//
// SetSink 输出固定为单行文本格式，不受此设置影响。
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.err = fmt.Errorf("xlog: unknown format %q", format)
		return b
	}
	b.format = normalized
	return b
}

// SetAddSource 是否在日志中添加源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetOrigin 设置单行格式中无调用位置时的来源名，通常为实例名
func (b *Builder) SetOrigin(origin string) *Builder {
	b.origin = origin
	return b
}

// SetRotation 输出到按大小轮转的单个文件
func (b *Builder) SetRotation(filename string, opts ...xrotate.LumberjackOption) *Builder {
	rotator, err := xrotate.NewLumberjack(filename, opts...)
	if err != nil {
		b.err = err
		return b
	}
	b.rotator = rotator
	b.output = rotator
	b.sink = nil
	return b
}

// SetSink 输出到 Sink：记录格式化为单行，经有界队列由单个协程批量写入
//
// Build 返回的 Logger 实现 [Flusher]，cleanup 关闭分发器并关闭 Sink。
// 来源取自调用位置，因此总是捕获 PC。
func (b *Builder) SetSink(sink xrotate.Sink, opts ...DispatcherOption) *Builder {
	if sink == nil {
		b.err = errors.New("xlog: sink is nil")
		return b
	}
	b.sink = sink
	b.sinkOpts = opts
	b.rotator = nil
	return b
}

// SetOnError 设置内部错误回调
//
// 当 Handler.Handle() 失败时（如写入失败、分发器已关闭）调用。
// 回调在日志调用方协程同步执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// Build 构建 Logger 实例
//
// 返回值：
//   - LoggerWithLevel: 日志实例，同时支持动态级别控制
//   - func() error: 清理函数，用于释放资源（关闭文件或分发器），只执行一次
//   - error: 配置错误
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	logger := &xlogger{
		levelVar:  b.levelVar,
		addSource: b.addSource,
		errs:      newErrorState(b.onError),
	}

	var closer func() error
	if b.sink != nil {
		d := NewDispatcher(b.sink, b.sinkOpts...)
		logger.handler = NewLineHandler(d, &LineHandlerOptions{Level: b.levelVar, Origin: b.origin})
		logger.addSource = true
		logger.flush = d.Flush
		closer = d.Close
	} else {
		opts := &slog.HandlerOptions{
			Level:     b.levelVar,
			AddSource: b.addSource,
		}
		switch b.format {
		case "json":
			logger.handler = slog.NewJSONHandler(b.output, opts)
		default:
			logger.handler = slog.NewTextHandler(b.output, opts)
		}
		if b.rotator != nil {
			closer = b.rotator.Close
		}
	}

	return logger, onceCleanup(closer), nil
}

// onceCleanup 包装清理函数，保证只执行一次
func onceCleanup(closer func() error) func() error {
	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			if closer != nil {
				err = closer()
			}
		})
		return err
	}
}
