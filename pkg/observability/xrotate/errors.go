package xrotate

import "errors"

// 轮转器错误
var (
	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidMaxSize MaxSizeMB 值无效（必须在 1~10240 范围内）
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSizeMB")

	// ErrInvalidMaxBackups MaxBackups 值无效（必须在 0~1024 范围内）
	ErrInvalidMaxBackups = errors.New("xrotate: invalid MaxBackups")

	// ErrInvalidConfig Roller 配置无效
	ErrInvalidConfig = errors.New("xrotate: invalid roll config")

	// ErrFileInit 无法创建轮转后的日志文件
	ErrFileInit = errors.New("xrotate: cannot create log file")

	// ErrIOFailure 日志写入失败
	ErrIOFailure = errors.New("xrotate: log write failed")

	// ErrSignalInit 无法安装轮转信号处理
	ErrSignalInit = errors.New("xrotate: cannot install rotation signal handler")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")
)
