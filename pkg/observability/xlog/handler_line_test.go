package xlog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

var handlerTestTime = time.Date(2024, 6, 1, 8, 9, 10, 0, time.Local)

func handle(t *testing.T, h slog.Handler, level slog.Level, msg string, attrs ...slog.Attr) {
	t.Helper()
	r := slog.NewRecord(handlerTestTime, level, msg, 0)
	r.AddAttrs(attrs...)
	require.NoError(t, h.Handle(context.Background(), r))
}

func TestLineHandler_Format(t *testing.T) {
	out := &captureSubmitter{}
	h := newLineHandler(out, &LineHandlerOptions{Origin: "copyfile"})

	handle(t, h, slog.LevelInfo, "started", slog.Int("pid", 42), slog.String("path", "/tmp/a b"))

	rec := out.last()
	assert.Equal(t, xrotate.CategoryDefault, rec.Category)
	assert.Equal(t, xrotate.CommandRecord, rec.Command)
	assert.Equal(t, `08:09:10.000000 [Info ] [copyfile] started pid=42 path="/tmp/a b"`+"\n", rec.Line)
}

func TestLineHandler_ZeroTimeUsesNow(t *testing.T) {
	out := &captureSubmitter{}
	h := newLineHandler(out, &LineHandlerOptions{Origin: "copyfile"})

	before := time.Now().Format(lineTimeLayout)
	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)))
	after := time.Now().Format(lineTimeLayout)

	stamp := out.last().Line[:len(lineTimeLayout)]
	assert.GreaterOrEqual(t, stamp, before)
	assert.LessOrEqual(t, stamp, after)
	assert.True(t, strings.HasSuffix(out.last().Line, " [Info ] [copyfile] no time\n"), out.last().Line)
}

func TestLineHandler_Category(t *testing.T) {
	out := &captureSubmitter{}
	h := newLineHandler(out, nil)

	handle(t, h, slog.LevelInfo, "m", Category(xrotate.CategoryMetrics))
	assert.Equal(t, xrotate.CategoryMetrics, out.last().Category)
	assert.NotContains(t, out.last().Line, KeyCategory)

	hw := h.WithAttrs([]slog.Attr{Category(xrotate.CategoryAlerts), slog.String("k", "v")})
	handle(t, hw, slog.LevelError, "a")
	assert.Equal(t, xrotate.CategoryAlerts, out.last().Category)
	assert.True(t, strings.HasSuffix(out.last().Line, "] a k=v\n"), out.last().Line)

	// 单条记录的分类覆盖预设分类
	handle(t, hw, slog.LevelError, "n", Category(xrotate.CategoryNotifications))
	assert.Equal(t, xrotate.CategoryNotifications, out.last().Category)

	// 原 handler 不受 WithAttrs 影响
	handle(t, h, slog.LevelInfo, "plain")
	assert.Equal(t, xrotate.CategoryDefault, out.last().Category)
}

func TestLineHandler_Groups(t *testing.T) {
	out := &captureSubmitter{}
	h := newLineHandler(out, &LineHandlerOptions{Origin: "o"}).
		WithGroup("req").
		WithAttrs([]slog.Attr{slog.String("id", "7")})

	handle(t, h, slog.LevelInfo, "done",
		slog.Group("resp", slog.Int("code", 200)),
		slog.Attr{},
	)
	assert.True(t, strings.HasSuffix(out.last().Line, "] done req.id=7 req.resp.code=200\n"), out.last().Line)
	assert.Same(t, h, h.WithGroup(""))
	assert.Same(t, h, h.WithAttrs(nil))
}

func TestLineHandler_Enabled(t *testing.T) {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelWarn)
	h := newLineHandler(&captureSubmitter{}, &LineHandlerOptions{Level: lv})

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))

	lv.Set(slog.Level(LevelTrace))
	assert.True(t, h.Enabled(ctx, slog.Level(LevelTrace)))

	// 默认 Info
	assert.False(t, newLineHandler(&captureSubmitter{}, nil).Enabled(ctx, slog.LevelDebug))
}

func TestLineHandler_SubmitError(t *testing.T) {
	out := &captureSubmitter{err: ErrDispatcherClosed}
	h := newLineHandler(out, nil)
	r := slog.NewRecord(handlerTestTime, slog.LevelInfo, "x", 0)
	assert.True(t, errors.Is(h.Handle(context.Background(), r), ErrDispatcherClosed))
}

func TestLineHandler_OriginFromCaller(t *testing.T) {
	sink := newRecordingSink()
	logger, cleanup, err := New().SetSink(sink).SetOrigin("fallback").Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "from test")
	require.NoError(t, cleanup())

	recs := sink.records()
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Line, "[github.com/omeyang/xboot/pkg/observability/xlog] from test")
}

func TestNeedsQuoting(t *testing.T) {
	assert.True(t, needsQuoting(""))
	assert.True(t, needsQuoting("a b"))
	assert.True(t, needsQuoting("a=b"))
	assert.True(t, needsQuoting(`a"b`))
	assert.True(t, needsQuoting("a\nb"))
	assert.False(t, needsQuoting("/var/log/app.log"))
	assert.False(t, needsQuoting("中文"))
}

func TestPackagePath(t *testing.T) {
	tests := []struct {
		fn   string
		want string
	}{
		{"github.com/omeyang/xboot/pkg/app/xapp.TryRun", "github.com/omeyang/xboot/pkg/app/xapp"},
		{"github.com/omeyang/xboot/pkg/app/xapp.(*harness).run.func1", "github.com/omeyang/xboot/pkg/app/xapp"},
		{"main.main", "main"},
		{"example.com/v2/pkg.F", "example.com/v2/pkg"},
		{"nodot", "nodot"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, packagePath(tt.fn), tt.fn)
	}
}
