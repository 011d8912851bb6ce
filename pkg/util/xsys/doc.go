// Package xsys 调整进程资源限制。
//
// 守护进程同时持有多个类别的日志文件和业务文件，启动时可通过
// RaiseFileLimit 提升最大打开文件数；只提升、不降低。
package xsys
