package xapp

import "errors"

var (
	// ErrCommandline 表示命令行参数无效。
	ErrCommandline = errors.New("xapp: invalid commandline")

	// ErrConfigOpen 表示无法打开或读取配置文件。
	ErrConfigOpen = errors.New("xapp: could not open config file")

	// ErrConfigInvalid 表示配置文件无法解析或未通过校验。
	ErrConfigInvalid = errors.New("xapp: invalid config file")

	// ErrDaemonize 表示无法转入后台运行。
	ErrDaemonize = errors.New("xapp: could not daemonize")

	// ErrLogInit 表示日志初始化失败。
	ErrLogInit = errors.New("xapp: could not init logging")

	// ErrUserRun 表示应用的运行函数返回了错误。
	ErrUserRun = errors.New("xapp: user run function returned error")

	// ErrBuildInfo 表示二进制中没有构建信息。
	ErrBuildInfo = errors.New("xapp: could not read build info")
)
