// Package xfile 提供日志与配置路径相关的文件系统工具。
//
// # 路径检查函数对比
//
//   - [SanitizePath]: 检查文件路径格式（空路径、空字节、相对穿越、目录路径）并规范化
//   - [CleanDir]: 检查配置中的目录路径并规范化，允许尾随分隔符和 ".."
//   - [CheckFileName]: 检查单个文件名（不得包含路径分隔符）
//
// # 路径穿越检测
//
// 只有 ".." 作为独立路径段时才视为穿越，合法文件名（如 "app..2024.log"）不会被误判。
//
// # 空字节防护
//
// Linux 内核在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致，
// 所有检查函数都会拒绝包含 \x00 的输入。
package xfile
