// Package xproc 提供进程标识与守护化。
//
// InstanceName 以启动名（os.Args[0]）标识实例，用于默认配置文件名和日志文件名。
// Daemonize 通过在新会话中重新执行自身实现后台运行。
package xproc
