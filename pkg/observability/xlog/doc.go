// Package xlog 基于 log/slog 的结构化日志库。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后 Build 返回该错误）。
// 输出方式：
//
//   - [Builder.SetOutput]: 同步写 io.Writer，text 或 json 格式
//   - [Builder.SetRotation]: 同步写按大小轮转的单个文件（lumberjack）
//   - [Builder.SetSink]: 记录经 [FormatLine] 格式化为单行，投递到 [Dispatcher]，
//     由单个工作协程批量交给 xrotate.Sink（按分类轮转的 xrotate.Roller，
//     或前台运行时的 [ConsoleSink]）
//
// # 单行格式
//
//	15:04:05.000000 [Info ] [github.com/acme/svc/worker] copied file=a.txt
//
// 时间为本地时间（日期体现在文件名中），来源为调用方的包路径。
//
// # 分类
//
// key 为 [KeyCategory] 的属性决定记录写入哪个文件，不出现在输出行中：
// [Alert]（ALERTS）、[NotifyDev]（NOTIFICATIONS）、[Metric]（METRICS），
// 未标记分类的记录写入默认文件。
//
// # 刷新
//
// 异步输出的 Logger 实现 [Flusher]；[Flush] 刷新全局 Logger。
// 进程退出前必须调用 Build 返回的 cleanup，否则队列中的记录会丢失。
//
// # 全局 Logger
//
//   - [Default]: 获取全局 Logger（惰性初始化：stderr、Info 级别、text 格式）
//   - [SetDefault]: 替换全局 Logger（nil 会被忽略）
//   - [ResetDefault]: 重置为未初始化状态（仅用于测试）
//   - [Trace]、[Debug]、[Info]、[Warn]、[Error]、[Stack]: 全局便利函数
//
// # 日志级别
//
// LevelTrace(-8)、LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// [ParseLevel] 从字符串解析；Level 实现 encoding.TextMarshaler/TextUnmarshaler。
// 派生 logger 共享父级的 LevelVar，运行时调整级别对所有派生 logger 生效。
package xlog
