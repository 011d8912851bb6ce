//go:build !unix

package xrun

import "os"

// DefaultSignals 返回默认监听的终止信号：os.Interrupt。
func DefaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
