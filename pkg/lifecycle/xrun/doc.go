// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// Group 并发运行守护进程的各个服务（用户主函数、日志刷新、轮转信号桥、
// 配置监视），任一服务出错或收到终止信号时取消全部服务并等待退出。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithSignals(), xrun.WithLogger(logger))
//	g.GoService("rotation-signal", bridge)
//	g.GoWithName("flush", xrun.Ticker(5*time.Second, false, flush))
//	g.Go(func(ctx context.Context) error {
//	    defer g.Cancel(nil)
//	    return userMain(ctx)
//	})
//	err := g.Wait()
//
// # 错误处理
//
// Wait 返回第一个非 nil 错误。Group 被主动取消时返回取消原因：
// 信号退出返回 *SignalError（errors.Is(err, ErrSignal) 为真），
// Cancel(nil) 或父 context 取消返回 nil。服务内部产生的
// context.Canceled 不会被过滤。
//
// # 信号
//
// WithSignals 在 NewGroup 返回前同步注册信号（默认 SIGHUP、SIGINT、
// SIGTERM、SIGQUIT），Run 与 RunWithOptions 总是启用信号处理。
// 日志轮转使用的 SIGUSR1 不在其中，由 xrotate.SignalBridge 单独处理。
package xrun
