package xrotate

import "io"

// 编译时断言：Rotator 接口是 io.WriteCloser 的超集
var _ io.WriteCloser = (Rotator)(nil)

// Rotator 单文件日志轮转器
//
// 实现 [io.WriteCloser]，可直接作为 slog.Handler 的输出目标。
// 实现必须是并发安全的；Close 后调用 Write 或 Rotate 返回 [ErrClosed]。
type Rotator interface {
	io.WriteCloser

	// Rotate 手动触发轮转：关闭当前文件并改名为备份，创建新文件
	Rotate() error
}
