package xrun

import (
	"os"

	"github.com/omeyang/xboot/pkg/observability/xlog"
)

// Option 配置 Group 的选项函数。
type Option func(*groupOptions)

type groupOptions struct {
	logger         xlog.Logger
	name           string
	signals        []os.Signal
	signalHandling bool
}

func defaultOptions() *groupOptions {
	return &groupOptions{name: "xrun"}
}

// log 返回配置的日志记录器；未配置时在调用时取全局 logger，
// 这样 Group 创建后替换的全局 logger 也能生效。
func (o *groupOptions) log() xlog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return xlog.Default()
}

// WithLogger 设置记录服务启停的日志记录器，默认使用 xlog.Default()。
func WithLogger(logger xlog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，用于日志中区分不同的 Group。默认 "xrun"。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 让 Group 监听终止信号：收到任一信号时以 *SignalError 取消所有服务。
// 不传信号时使用 DefaultSignals()。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithSignals())
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signalHandling = true
		o.signals = copied
	}
}
