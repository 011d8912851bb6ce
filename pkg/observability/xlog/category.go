package xlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// KeyCategory 分类属性的 key，决定记录写入哪个文件
const KeyCategory = "category"

// Category 创建分类属性
//
//	logger.With(xlog.Category(xrotate.CategoryMetrics)).Info(ctx, "queue depth 3")
func Category(c xrotate.Category) slog.Attr {
	return slog.String(KeyCategory, string(c))
}

// Alert 记录一条运维告警（ALERTS 分类，Error 级别），消息格式 "[code] msg"
//
// 与下面的辅助函数一样，行中的来源是调用方所在的包。
func Alert(ctx context.Context, l Logger, code, msg string, attrs ...slog.Attr) {
	logFrom(ctx, l.With(Category(xrotate.CategoryAlerts)), slog.LevelError, codeMessage(code, msg), attrs)
}

// AlertPanic 记录告警后 panic
//
// 由应用入口的 panic 边界负责刷新日志。
func AlertPanic(ctx context.Context, l Logger, code, msg string, attrs ...slog.Attr) {
	logFrom(ctx, l.With(Category(xrotate.CategoryAlerts)), slog.LevelError, codeMessage(code, msg), attrs)
	panic(fmt.Sprintf("Fatal AE Alert: %s", codeMessage(code, msg)))
}

// NotifyDev 记录一条开发通知（NOTIFICATIONS 分类，Error 级别）
func NotifyDev(ctx context.Context, l Logger, code, msg string, attrs ...slog.Attr) {
	logFrom(ctx, l.With(Category(xrotate.CategoryNotifications)), slog.LevelError, codeMessage(code, msg), attrs)
}

// Metric 记录一条指标日志（METRICS 分类，Info 级别）
func Metric(ctx context.Context, l Logger, msg string, attrs ...slog.Attr) {
	logFrom(ctx, l.With(Category(xrotate.CategoryMetrics)), slog.LevelInfo, msg, attrs)
}

func codeMessage(code, msg string) string {
	return "[" + code + "] " + msg
}
