package xproc

import "sync"

// ResetNames 重置进程名与实例名缓存（仅用于测试）。
func ResetNames() {
	processNameOnce = sync.Once{}
	processNameValue = ""
	instanceNameOnce = sync.Once{}
	instanceNameValue = ""
}
