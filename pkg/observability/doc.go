// Package observability 提供日志相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展；单行格式、异步分发、类别日志
//   - xrotate: 按类别写入、按时间与大小轮转的日志文件，SIGUSR1 触发轮转
//
// 轮转指标（次数、失败次数、写入字节数）通过 OpenTelemetry metric API 上报。
package observability
