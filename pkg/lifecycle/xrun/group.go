package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xboot/pkg/observability/xlog"
)

// Group 基于 errgroup + context 管理多个服务的并发运行和协调关闭。
//
// 当任一服务返回错误、收到终止信号或 Cancel 被调用时，所有服务都会收到取消信号。
//
// Go、GoWithName、Cancel 可安全地从多个 goroutine 并发调用。
// Wait 应仅调用一次。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithSignals())
//	g.GoWithName("flush", xrun.Ticker(5*time.Second, false, flush))
//	g.Go(func(ctx context.Context) error {
//	    return runDaemon(ctx)
//	})
//	if err := g.Wait(); err != nil {
//	    return err
//	}
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建新的 Group，返回 Group 和派生的 context。
// 当任一 goroutine 返回错误时，返回的 context 会被取消。
// 配置了 WithSignals 时，信号在返回前完成注册。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	g := &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}
	if options.signalHandling {
		g.Go(g.watchSignals(ctx, options.signals))
	}
	return g, egCtx
}

// Go 启动一个 goroutine 执行 fn。fn 应监听 ctx.Done() 以响应取消。
// fn 返回非 nil 错误时，会触发所有其他 goroutine 的取消。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，但会在日志中记录服务的启停。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		log := g.opts.log()
		attrs := []slog.Attr{xlog.Component(g.opts.name), slog.String("service", name)}

		log.Debug(g.ctx, "service starting", attrs...)
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn(g.ctx, "service exited with error", append(attrs, xlog.Err(err))...)
		} else {
			log.Debug(g.ctx, "service stopped", attrs...)
		}
		return err
	})
}

// GoService 以 GoWithName 运行 Service，svc 为 nil 时该服务返回 ErrNilService。
func (g *Group) GoService(name string, svc Service) {
	if svc == nil {
		g.Go(func(context.Context) error { return ErrNilService })
		return
	}
	g.GoWithName(name, svc.Run)
}

// Wait 等待所有 goroutine 完成，返回第一个非 nil 错误。
//
// 错误是 context.Canceled 时：若 Group 被取消（Cancel、信号或父 context），
// 返回显式的取消原因（如 *SignalError），没有原因时返回 nil；
// 若 Group 未被取消，该错误来自服务内部，原样返回。
// 所有服务返回 nil 但存在显式取消原因时，同样返回该原因。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.opts.log().Debug(g.ctx, "all services stopped", xlog.Component(g.opts.name))

	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() != nil {
			return g.cause()
		}
		return err
	}
	if err == nil && g.causeCtx.Err() != nil {
		return g.cause()
	}
	return err
}

func (g *Group) cause() error {
	if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// Cancel 主动取消所有 goroutine，cause 作为 Wait 的返回值。
// cause 为 nil 时 Wait 返回 nil。cause 不应包装 context.Canceled，
// 否则会被当作普通取消过滤掉。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// Service 定义可由 Group 管理的服务。
// xrotate.SignalBridge 与 xconf.Watcher 都满足此接口。
type Service interface {
	// Run 阻塞直到 ctx 被取消或发生错误。
	Run(ctx context.Context) error
}

// ServiceFunc 将函数适配为 Service。
type ServiceFunc func(ctx context.Context) error

// Run 实现 Service 接口。
func (f ServiceFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Run 监听 DefaultSignals 并运行 services，直到全部退出或收到信号。
// 收到信号时返回 *SignalError。
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
// 未指定 WithSignals 时使用 DefaultSignals。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, append([]Option{WithSignals()}, opts...)...)
	for _, svc := range services {
		g.Go(svc)
	}
	return g.Wait()
}
