//go:build unix

package xrun

import (
	"os"

	"golang.org/x/sys/unix"
)

// DefaultSignals 返回默认监听的终止信号：SIGHUP、SIGINT、SIGTERM、SIGQUIT。
//
// 每次调用返回新的切片，调用者可安全修改。
func DefaultSignals() []os.Signal {
	return []os.Signal{
		unix.SIGHUP,
		unix.SIGINT,
		unix.SIGTERM,
		unix.SIGQUIT,
	}
}
