package xrun

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/omeyang/xboot/pkg/observability/xlog"
)

// testSigChanKey 用于在测试中通过 context 注入信号，避免向测试进程发送真实信号。
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

// watchSignals 在 NewGroup 内同步注册信号，返回等待信号的服务函数。
// 同步注册保证 NewGroup 返回后到达的信号不会丢失。
func (g *Group) watchSignals(parent context.Context, signals []os.Signal) func(ctx context.Context) error {
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	testc := testSigChan(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	return func(ctx context.Context) error {
		defer signal.Stop(sigCh)

		var sig os.Signal
		select {
		case sig = <-testc:
		case sig = <-sigCh:
		case <-ctx.Done():
			return nil
		}

		g.opts.log().Info(ctx, "received signal",
			xlog.Component(g.opts.name),
			slog.String("signal", sig.String()),
		)
		g.cancel(&SignalError{Signal: sig})
		return nil
	}
}
