//go:build !unix

package xrotate

import (
	"context"
	"fmt"
)

// SignalBridge 非 unix 平台不支持信号触发轮转
type SignalBridge struct{}

// NotifyRotation 在非 unix 平台上返回 ErrSignalInit
func NotifyRotation(_ *RotationFlag) (*SignalBridge, error) {
	return nil, fmt.Errorf("%w: SIGUSR1 is not available on this platform", ErrSignalInit)
}

// Run 立即返回
func (b *SignalBridge) Run(_ context.Context) error {
	return nil
}

// Stop 空操作
func (b *SignalBridge) Stop() {}
