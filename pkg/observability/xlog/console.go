package xlog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// severityTag 日志行中级别标签的位置：时间（15 字节）+ 空格之后的 "[xxxxx]"
const (
	severityTagStart = len(lineTimeLayout) + 1
	severityTagEnd   = severityTagStart + 7
)

// ConsoleSink 把日志行写到终端，前台调试（--stdout）时使用
//
// 所有分类写入同一个 writer，不轮转。启用颜色时按级别为标签着色。
type ConsoleSink struct {
	w      io.Writer
	colors map[string]*color.Color
}

// 编译时接口检查
var _ xrotate.Sink = (*ConsoleSink)(nil)

// ConsoleOption ConsoleSink 配置选项
type ConsoleOption func(*ConsoleSink)

// WithColor 强制开启或关闭颜色，默认仅在 stdout 为终端时开启
func WithColor(enable bool) ConsoleOption {
	return func(s *ConsoleSink) {
		for _, c := range s.colors {
			if enable {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewConsoleSink 创建写入 w 的 Sink，w 为 nil 时使用 os.Stdout
func NewConsoleSink(w io.Writer, opts ...ConsoleOption) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	s := &ConsoleSink{
		w: w,
		colors: map[string]*color.Color{
			"[Error]": color.New(color.FgRed, color.Bold),
			"[Warn ]": color.New(color.FgYellow),
			"[Info ]": color.New(color.FgGreen),
			"[Debug]": color.New(color.FgCyan),
			"[Trace]": color.New(color.Faint),
		},
	}
	// color 包按 os.Stdout 是否为终端决定全局默认值，其他 writer 默认不着色
	if w != os.Stdout {
		WithColor(false)(s)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process 实现 xrotate.Sink
func (s *ConsoleSink) Process(batch []xrotate.Record) error {
	for _, rec := range batch {
		if rec.Command != xrotate.CommandRecord {
			continue
		}
		if _, err := io.WriteString(s.w, s.colorize(rec.Line)); err != nil {
			return fmt.Errorf("%w: console: %w", xrotate.ErrIOFailure, err)
		}
	}
	return nil
}

// colorize 为级别标签着色，格式不符的行原样返回
func (s *ConsoleSink) colorize(line string) string {
	if len(line) < severityTagEnd {
		return line
	}
	tag := line[severityTagStart:severityTagEnd]
	c, ok := s.colors[tag]
	if !ok {
		return line
	}
	return line[:severityTagStart] + c.Sprint(tag) + line[severityTagEnd:]
}

// Close 实现 xrotate.Sink；终端由进程持有，不关闭
func (s *ConsoleSink) Close() error {
	return nil
}
