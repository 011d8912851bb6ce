// Package xrotate 提供日志文件轮转功能。
//
// # 实现
//
//   - [Roller]: 按分类（Category）写入多个日志文件的轮转写入器，
//     支持按大小、按时间边界、按外部信号（SIGUSR1）触发整组轮转
//   - [NewLumberjack]: 基于 lumberjack v2 的单文件按大小轮转，实现 [Rotator]
//
// # Roller 文件组
//
// 每个 [Output] 对应一个打开的文件，文件名为
// <YYYYMMDD-HHMM>-<BaseName><Suffix>.log（本地时间），以独占方式创建：
// 同一分钟内重复创建同名文件会失败（[ErrFileInit]），不会追加到旧文件。
//
// 任一触发条件成立时，整组文件一起替换，而不是只替换触发的那个分类。
// 新文件组打开失败时保留旧文件组继续写入：
//   - 信号触发：记录错误，旧文件组继续使用
//   - 时间触发：记录错误，有效期推迟到下一个时间边界
//   - 大小触发：记录错误，目标文件的已写字节数减半，推迟下一次尝试
//
// # 并发模型
//
// Roller 不是并发安全的，由日志分发器的单个工作协程独占（见 xlog.Dispatcher）。
// 唯一跨协程共享的状态是 [RotationFlag]：信号协程只做原子置位，
// Roller 在每批记录开始时原子读取并清除。
//
// # 错误处理
//
//   - 初始化错误（配置无效、首组文件打开失败）直接返回给调用方
//   - 运行期轮转失败通过 WithRollErrorHandler 回调上报，不返回
//   - 运行期写入失败返回包装 [ErrIOFailure] 的错误，由分发器按致命错误处理
//
// 回调不得写回同一个 Roller，否则会在分发队列上形成递归。
package xrotate
