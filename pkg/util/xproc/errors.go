package xproc

import "errors"

var (
	// ErrDaemonStart 表示无法启动脱离终端的子进程。
	ErrDaemonStart = errors.New("xproc: start daemon process failed")

	// ErrNotDetached 表示带有守护标记的进程不是新会话的首进程。
	ErrNotDetached = errors.New("xproc: daemon process is not a session leader")

	// ErrDaemonUnsupported 表示当前平台不支持守护化。
	ErrDaemonUnsupported = errors.New("xproc: daemonize not supported on this platform")
)
