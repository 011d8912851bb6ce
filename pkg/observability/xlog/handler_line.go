package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// submitter LineHandler 的投递目标
type submitter interface {
	Submit(rec xrotate.Record) error
}

// LineHandlerOptions LineHandler 配置
type LineHandlerOptions struct {
	// Level 最低级别，nil 表示 Info
	Level slog.Leveler

	// Origin 记录中没有调用位置时使用的来源名
	Origin string
}

// LineHandler 把 slog 记录格式化为单行文本并投递给分发器
//
// 分类取自 key 为 [KeyCategory] 的属性（With 预设或单条记录携带），
// 该属性不会出现在输出行中；其余属性以 " key=value" 追加在消息后。
// 来源为调用方的包路径。
type LineHandler struct {
	out      submitter
	level    slog.Leveler
	origin   string
	category xrotate.Category
	prefix   string // With 预设属性的已格式化文本
	group    string // WithGroup 累积的 key 前缀，以 "." 结尾
}

// 编译时接口检查
var _ slog.Handler = (*LineHandler)(nil)

// NewLineHandler 创建投递到 d 的 Handler
func NewLineHandler(d *Dispatcher, opts *LineHandlerOptions) *LineHandler {
	return newLineHandler(d, opts)
}

func newLineHandler(out submitter, opts *LineHandlerOptions) *LineHandler {
	h := &LineHandler{out: out, level: slog.LevelInfo}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.origin = opts.Origin
	}
	return h
}

// Enabled 实现 slog.Handler
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle 实现 slog.Handler
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	category := h.category

	var msg strings.Builder
	msg.WriteString(r.Message)
	msg.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && a.Key == KeyCategory {
			category = xrotate.Category(a.Value.String())
			return true
		}
		appendAttr(&msg, h.group, a)
		return true
	})

	origin := h.origin
	if r.PC != 0 {
		if pkg := originFromPC(r.PC); pkg != "" {
			origin = pkg
		}
	}

	return h.out.Submit(xrotate.Record{
		Category: category,
		Line:     FormatLine(recordTime(r), Level(r.Level), origin, msg.String()),
		Command:  xrotate.CommandRecord,
	})
}

// recordTime 记录时间；手工构造、未设置时间的记录使用当前时间
func recordTime(r slog.Record) time.Time {
	if r.Time.IsZero() {
		return time.Now()
	}
	return r.Time
}

// WithAttrs 实现 slog.Handler
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		if h.group == "" && a.Key == KeyCategory {
			h2.category = xrotate.Category(a.Value.String())
			continue
		}
		appendAttr(&b, h.group, a)
	}
	h2.prefix = b.String()
	return &h2
}

// WithGroup 实现 slog.Handler
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = h.group + name + "."
	return &h2
}

// appendAttr 以 " key=value" 追加属性，分组属性展开为 "group.key=value"
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	v := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if v.Kind() == slog.KindGroup {
		g := group
		if a.Key != "" {
			g = group + a.Key + "."
		}
		for _, ga := range v.Group() {
			appendAttr(b, g, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(group)
	b.WriteString(a.Key)
	b.WriteByte('=')
	s := v.String()
	if needsQuoting(s) {
		b.WriteString(strconv.Quote(s))
	} else {
		b.WriteString(s)
	}
}

// needsQuoting 值为空或包含空白、引号、等号、不可打印字符时需要加引号
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r == '=' || r == '"' || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

// originFromPC 返回 pc 所在函数的包路径
func originFromPC(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	return packagePath(f.Function)
}

// packagePath 从完整函数名中截取包路径
//
//	github.com/a/b/pkg.(*T).Method → github.com/a/b/pkg
//	main.main → main
func packagePath(function string) string {
	if function == "" {
		return ""
	}
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		return function
	}
	return function[:slash+1+dot]
}
