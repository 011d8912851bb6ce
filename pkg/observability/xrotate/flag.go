package xrotate

import "sync/atomic"

// RotationFlag 轮转请求标志
//
// Request 可在任意协程调用（信号协程），TakeAndClear 由 Roller 在
// 处理每批记录前调用。Go 的原子操作是顺序一致的，置位后必然被后续读取观察到。
type RotationFlag struct {
	requested atomic.Bool
}

// Request 请求一次轮转，只做原子置位
func (f *RotationFlag) Request() {
	f.requested.Store(true)
}

// TakeAndClear 读取并清除请求，返回是否有待处理的请求
func (f *RotationFlag) TakeAndClear() bool {
	return f.requested.Swap(false)
}

// Pending 返回是否有未处理的请求（不清除）
func (f *RotationFlag) Pending() bool {
	return f.requested.Load()
}

// globalFlag 进程级轮转标志，由信号桥置位
var globalFlag RotationFlag

// GlobalRotationFlag 返回进程级轮转标志
func GlobalRotationFlag() *RotationFlag {
	return &globalFlag
}

// RequestRotation 请求进程级 Roller 在下一批记录前轮转
func RequestRotation() {
	globalFlag.Request()
}
