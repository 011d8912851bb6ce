// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 路径校验与目录创建
//   - xproc: 进程标识（进程名、实例名）与守护化
//   - xsys: 进程资源限制，最大打开文件数
package util
