//go:build !unix

package xproc

// DaemonEnv 标记由 Daemonize 重新启动的子进程。
const DaemonEnv = "XBOOT_DAEMONIZED"

// Daemonize 在非 unix 平台上不可用，调用方应使用前台模式运行。
func Daemonize() (parent bool, err error) {
	return false, ErrDaemonUnsupported
}
