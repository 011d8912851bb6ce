package xrun

import (
	"context"
	"time"
)

// Ticker 返回周期性执行 fn 的服务函数。
//
// interval 必须为正数，否则服务返回 ErrInvalidInterval。
// immediate 为 true 时启动后先执行一次。fn 返回错误时服务退出并返回该错误。
//
//	g.GoWithName("flush", xrun.Ticker(5*time.Second, false, func(ctx context.Context) error {
//	    return xlog.Flush()
//	}))
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}

		// 已取消的 context 不触发首次执行
		if immediate {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// WaitForDone 返回等待 context 取消的占位服务，用于保持 Group 运行。
func WaitForDone() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
}
