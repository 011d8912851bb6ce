//go:build unix

package xproc

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// DaemonEnv 标记由 Daemonize 重新启动的子进程。
const DaemonEnv = "XBOOT_DAEMONIZED"

// 测试中可替换。
var (
	startProcess = func(cmd *exec.Cmd) error {
		if err := cmd.Start(); err != nil {
			return err
		}
		return cmd.Process.Release()
	}
	getsid = func() (int, error) { return unix.Getsid(0) }
)

// Daemonize 让进程脱离控制终端在后台运行。
//
// Go 运行时无法安全 fork，因此以相同的参数重新执行当前程序：子进程在新会话中
// 启动（setsid），继承工作目录、环境变量和标准输入输出，并带有 DaemonEnv 标记。
//
// 返回 parent 为 true 时，调用方是原进程，应立即以状态 0 退出；
// 返回 false 时，调用方已是守护子进程，继续执行。
func Daemonize() (parent bool, err error) {
	if os.Getenv(DaemonEnv) != "" {
		// 清除标记，避免守护进程再启动的子进程被误判
		_ = os.Unsetenv(DaemonEnv)
		sid, err := getsid()
		if err != nil {
			return false, fmt.Errorf("%w: getsid: %w", ErrNotDetached, err)
		}
		if sid != os.Getpid() {
			return false, fmt.Errorf("%w: sid %d, pid %d", ErrNotDetached, sid, os.Getpid())
		}
		return false, nil
	}

	exe, err := osExecutable()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDaemonStart, err)
	}
	cmd := &exec.Cmd{
		Path:        exe,
		Args:        os.Args,
		Env:         append(os.Environ(), DaemonEnv+"=1"),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		SysProcAttr: &syscall.SysProcAttr{Setsid: true},
	}
	if err := startProcess(cmd); err != nil {
		return false, fmt.Errorf("%w: %w", ErrDaemonStart, err)
	}
	return true, nil
}
