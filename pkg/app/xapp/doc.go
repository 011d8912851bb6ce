// Package xapp 是守护进程的启动框架。
//
// 应用只需提供配置类型和运行函数：
//
//	type Config struct {
//	    xapp.CommonConfig `koanf:"common"`
//	    InputPath string  `koanf:"input_path"`
//	}
//
//	func main() {
//	    xapp.Run(func() *Config { return &Config{} }, func(ctx context.Context, cfg *Config) error {
//	        xlog.Info(ctx, "running", slog.String("input", cfg.InputPath))
//	        return nil
//	    })
//	}
//
// 框架负责：解析公共命令行参数（-h -c -f -s -a -v），读取 <instance>.yaml
// 或 -c 指定的配置并校验，默认转入后台运行，初始化日志（-s 写标准输出，
// 否则按 METRICS、ALERTS、NOTIFICATIONS 与默认类别写入轮转文件，收到
// SIGUSR1 时轮转），记录启动参数、配置与构建信息，在 xrun.Group 中运行
// 日志定期刷新、配置监视（运行时应用 log_level）与终止信号处理。
//
// 运行函数 panic 时记录日志并刷新，等待一秒后重新 panic；返回的错误包装为
// ErrUserRun。Run 与 RunWithArgs 出错时打印错误并以状态 1 退出。
//
// 轮转失败等日志系统自身的错误写入 <log_path>/<instance>_xboot.log 与标准错误。
package xapp
