//go:build unix

package xrotate

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// RotationSignal 触发轮转的信号
var RotationSignal os.Signal = unix.SIGUSR1

// SignalBridge 把 SIGUSR1 转换为 RotationFlag 置位
//
// os/signal 在运行时内部完成信号安全的投递，桥接协程收到信号后
// 只调用 flag.Request()，不分配、不加锁、不写日志。
type SignalBridge struct {
	flag     *RotationFlag
	sigCh    chan os.Signal
	stopOnce sync.Once
}

// NotifyRotation 立即注册 SIGUSR1 监听并返回桥接器
//
// 注册在返回前完成，之后到达的信号不会丢失（缓冲 1 个，
// 多个未处理的信号合并为一次轮转请求）。
// flag 为 nil 时使用进程级标志。
func NotifyRotation(flag *RotationFlag) (*SignalBridge, error) {
	if flag == nil {
		flag = GlobalRotationFlag()
	}
	b := &SignalBridge{
		flag:  flag,
		sigCh: make(chan os.Signal, 1),
	}
	signal.Notify(b.sigCh, RotationSignal)
	return b, nil
}

// Run 转发信号直到 ctx 取消，可作为 xrun 服务运行
func (b *SignalBridge) Run(ctx context.Context) error {
	defer b.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-b.sigCh:
			if !ok {
				return nil
			}
			b.flag.Request()
		}
	}
}

// Stop 取消信号注册，可重复调用
func (b *SignalBridge) Stop() {
	b.stopOnce.Do(func() {
		signal.Stop(b.sigCh)
	})
}
