package xlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xboot/pkg/observability/xlog"
)

func TestDefault_LazyInit(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	logger := xlog.Default()
	require.NotNil(t, logger)
	assert.Equal(t, logger, xlog.Default(), "Default() should return the same instance")
}

func TestDefault_FallbackWhenBuildFails(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()
	restore := xlog.SetNewBuilderForTest(func() *xlog.Builder {
		return xlog.New().SetFormat("xml")
	})
	defer restore()

	logger := xlog.Default()
	require.NotNil(t, logger)
	assert.NoError(t, xlog.Flush())
}

func TestSetDefault(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	var buf bytes.Buffer
	custom, cleanup, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelTrace).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	xlog.SetDefault(custom)
	xlog.SetDefault(nil)

	ctx := context.Background()
	xlog.Trace(ctx, "global trace")
	xlog.Debug(ctx, "global debug")
	xlog.Info(ctx, "global info")
	xlog.Warn(ctx, "global warn")
	xlog.Error(ctx, "global error", slog.Int("n", 1))
	xlog.Stack(ctx, "global stack")

	out := buf.String()
	for _, want := range []string{"global trace", "global debug", "global info", "global warn", "global error", "global stack", "stack="} {
		assert.Contains(t, out, want)
	}
}

func TestFlush_Global(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetSink(xlog.NewConsoleSink(&buf)).SetOrigin("demo").Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()
	xlog.SetDefault(logger)

	xlog.Info(context.Background(), "queued")
	require.NoError(t, xlog.Flush())
	assert.Contains(t, buf.String(), "[Info ] [github.com/omeyang/xboot/pkg/observability/xlog_test] queued\n")
}

func TestDefault_ConcurrencySafety(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, xlog.Default())
		}()
	}
	wg.Wait()
}

// stubLogger 非 xlogger 实现，验证全局函数的降级路径
type stubLogger struct {
	lastLevel slog.Level
	lastMsg   string
}

func (m *stubLogger) record(level slog.Level, msg string) { m.lastLevel, m.lastMsg = level, msg }

func (m *stubLogger) Trace(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.Level(xlog.LevelTrace), msg)
}
func (m *stubLogger) Debug(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.LevelDebug, msg)
}
func (m *stubLogger) Info(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.LevelInfo, msg)
}
func (m *stubLogger) Warn(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.LevelWarn, msg)
}
func (m *stubLogger) Error(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.LevelError, msg)
}
func (m *stubLogger) Stack(_ context.Context, msg string, _ ...slog.Attr) {
	m.record(slog.LevelError, msg)
}
func (m *stubLogger) With(_ ...slog.Attr) xlog.Logger { return m }
func (m *stubLogger) WithGroup(_ string) xlog.Logger { return m }
func (m *stubLogger) SetLevel(_ xlog.Level) {}
func (m *stubLogger) GetLevel() xlog.Level { return xlog.LevelTrace }
func (m *stubLogger) Enabled(_ context.Context, _ xlog.Level) bool { return true }

func TestGlobal_FallbackNonXlogger(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	stub := &stubLogger{}
	xlog.SetDefault(stub)
	ctx := context.Background()

	tests := []struct {
		log   func(context.Context, string, ...slog.Attr)
		level slog.Level
	}{
		{xlog.Trace, slog.Level(xlog.LevelTrace)},
		{xlog.Debug, slog.LevelDebug},
		{xlog.Info, slog.LevelInfo},
		{xlog.Warn, slog.LevelWarn},
		{xlog.Error, slog.LevelError},
		{xlog.Stack, slog.LevelError},
	}
	for _, tt := range tests {
		tt.log(ctx, "fallback")
		assert.Equal(t, tt.level, stub.lastLevel)
		assert.Equal(t, "fallback", stub.lastMsg)
	}

	// 非 Flusher 实现时 Flush 为空操作
	assert.NoError(t, xlog.Flush())
}
