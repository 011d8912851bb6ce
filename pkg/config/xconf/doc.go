// Package xconf 提供配置加载、反序列化和热重载，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML（默认）：.yaml, .yml
//   - JSON：.json
//
// # 反序列化
//
// Unmarshal 使用 mapstructure，默认允许弱类型转换（字符串 "8" 可转为 int 8），
// 实现 encoding.TextUnmarshaler 的字段按文本解析。[WithStrict] 拒绝未知键。
//
// # 重载与监视
//
// Reload 解析成功后原子替换内部 koanf 实例，失败时保留旧配置。
// [Watch] 基于 fsnotify 监视配置文件所在目录，防抖后调用 Reload 并回调；
// [Watcher.Run] 阻塞到 ctx 取消，可直接交给 xrun 运行。
package xconf
