package xapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xboot/pkg/config/xconf"
	"github.com/omeyang/xboot/pkg/lifecycle/xrun"
	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/util/xproc"
	"github.com/omeyang/xboot/pkg/util/xsys"
)

// 测试中可替换
var (
	daemonize      = xproc.Daemonize
	raiseFileLimit = xsys.RaiseFileLimit
	exitFunc       = os.Exit
	panicSleep     = time.Sleep
)

// RunFunc 应用的运行函数。ctx 在收到终止信号时取消。
type RunFunc[A Args, C Config] func(ctx context.Context, args A, cfg C) error

// InstanceName 返回实例名（启动名的基础文件名）。
func InstanceName() string {
	return xproc.InstanceName()
}

// app 一次运行的状态。
type app[A Args, C Config] struct {
	opts      *options
	args      A
	newConfig func() C
	run       RunFunc[A, C]

	logs         *logging
	prevDefault  xlog.LoggerWithLevel
	shutdownOnce sync.Once
	shutdownErr  error
}

func newApp[A Args, C Config](args A, newConfig func() C, run RunFunc[A, C], opts []Option) *app[A, C] {
	return &app[A, C]{
		opts:      newOptions(opts),
		args:      args,
		newConfig: newConfig,
		run:       run,
	}
}

// TryRun 解析命令行、读取并校验配置、按需转入后台、初始化日志，然后运行 run。
//
//   - --help 打印帮助，--version 打印构建信息，均不读取配置
//   - --validate 只读取并校验配置（不检查外部文件），同时拒绝未知配置键
//   - 未指定 --stdout 或 --foreground 时转入后台，原进程以状态 0 退出
//   - --stdout 时日志写标准输出，否则按类别写入轮转文件并响应 SIGUSR1
//
// run 在调用方协程执行。run panic 时记录日志、刷新并等待 PanicDelay 后重新 panic。
// run 返回的错误包装为 ErrUserRun。返回前日志已刷新并关闭。
func TryRun[A Args, C Config](ctx context.Context, args A, newConfig func() C, run RunFunc[A, C], opts ...Option) (err error) {
	a := newApp(args, newConfig, run, opts)
	defer func() {
		if cerr := a.shutdown(); err == nil {
			err = cerr
		}
	}()
	return a.execute(ctx)
}

// RunWithArgs 以自定义命令行参数运行应用。
// 出错时把错误打印到标准错误并记录日志，关闭日志后以状态 1 退出进程。
func RunWithArgs[A Args, C Config](args A, newConfig func() C, run RunFunc[A, C], opts ...Option) {
	ctx := context.Background()
	a := newApp(args, newConfig, run, opts)
	defer func() { _ = a.shutdown() }()

	err := a.execute(ctx)
	if err != nil {
		fmt.Fprintf(a.opts.stderr, "Error executing application: %v\n", err)
		if a.logs != nil {
			a.logs.logger.Error(ctx, "error executing application", xlog.Err(err))
		}
	}
	if cerr := a.shutdown(); cerr != nil {
		fmt.Fprintf(a.opts.stderr, "Error closing logs: %v\n", cerr)
	}
	if err != nil {
		exitFunc(1)
	}
}

// Run 以 CommonArgs 运行应用，见 RunWithArgs。
func Run[C Config](newConfig func() C, run func(ctx context.Context, cfg C) error, opts ...Option) {
	RunWithArgs(&CommonArgs{}, newConfig, func(ctx context.Context, _ *CommonArgs, cfg C) error {
		return run(ctx, cfg)
	}, opts...)
}

func (a *app[A, C]) execute(ctx context.Context) error {
	o := a.opts
	if err := ParseArgs(ctx, o.instance, o.argv, a.args, o.stdout); err != nil {
		return err
	}
	common := a.args.Common()
	switch {
	case common.Help:
		return nil
	case common.Version:
		return PrintBuildInfo(o.stdout)
	}

	path := common.Config
	if path == "" {
		path = o.instance + ".yaml"
	}
	cfg, src, err := LoadConfig(path, a.newConfig, common.Validate)
	if err != nil {
		return err
	}
	if common.Validate {
		return validateConfig(path, cfg, false)
	}
	if err := validateConfig(path, cfg, true); err != nil {
		return err
	}

	if !common.Stdout && !common.Foreground {
		parent, err := daemonize()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDaemonize, err)
		}
		if parent {
			exitFunc(0)
			return nil
		}
	}

	if err := a.initLogging(cfg.Common(), common.Stdout); err != nil {
		return err
	}
	logger := a.logs.logger
	a.applyFileLimit(ctx, cfg.Common().MaxOpenFiles)

	logger.Info(ctx, "started with arguments", slog.Any("args", a.args))
	logger.Info(ctx, "configuration", slog.String("path", path), slog.Any("config", cfg))
	if err := LogBuildInfo(ctx, logger); err != nil {
		return err
	}
	logger.Info(ctx, "starting application",
		append([]slog.Attr{xlog.RunID(uuid.NewString()), xlog.PID(xproc.ProcessID())}, buildAttrs()...)...)
	_ = a.logs.flush()

	err = a.runGroup(ctx, cfg, src)
	if err != nil {
		return err
	}
	logger.Info(ctx, "finished application")
	_ = a.logs.flush()
	return nil
}

func (a *app[A, C]) initLogging(cc *CommonConfig, stdout bool) error {
	var err error
	if stdout {
		a.logs, err = initStdoutLogging(cc, a.opts.instance, a.opts.stdout)
	} else {
		a.logs, err = initFileLogging(cc, a.opts.instance, a.opts.stderr)
	}
	if err != nil {
		return err
	}
	a.prevDefault = xlog.Default()
	xlog.SetDefault(a.logs.logger)

	if stdout {
		a.logs.logger.Info(context.Background(), "logging to stdout")
	} else {
		a.logs.logger.Info(context.Background(), "opened logfile", slog.Any("paths", a.logs.roller.Paths()))
	}
	return nil
}

// applyFileLimit 按配置提升最大打开文件数，失败只记录告警。
func (a *app[A, C]) applyFileLimit(ctx context.Context, limit uint64) {
	if limit == 0 {
		return
	}
	logger := a.logs.logger
	got, err := raiseFileLimit(limit)
	switch {
	case err != nil:
		logger.Warn(ctx, "could not raise open file limit", slog.Uint64("max_open_files", limit), xlog.Err(err))
	case got < limit:
		logger.Warn(ctx, "open file limit capped by hard limit", slog.Uint64("max_open_files", limit), slog.Uint64("limit", got))
	default:
		logger.Info(ctx, "open file limit", slog.Uint64("limit", got))
	}
}

// runGroup 在 xrun.Group 中运行日志刷新、轮转信号桥与配置监视，run 在当前协程执行。
// 收到终止信号视为正常退出。
func (a *app[A, C]) runGroup(ctx context.Context, cfg C, src xconf.Config) error {
	logger := a.logs.logger
	g, gctx := xrun.NewGroup(ctx,
		xrun.WithName(a.opts.instance),
		xrun.WithLogger(logger),
		xrun.WithSignals(),
	)

	if a.logs.bridge != nil {
		g.GoService("rotation-signal", a.logs.bridge)
	}
	g.GoWithName("log-flush", xrun.Ticker(a.opts.flushInterval, false, func(context.Context) error {
		return a.logs.flush()
	}))
	if a.opts.watchConfig {
		w, err := xconf.Watch(src, a.onConfigChange)
		if err != nil {
			logger.Warn(ctx, "config watch disabled", xlog.Err(err))
		} else {
			g.GoService("config-watch", w)
		}
	}

	// run panic 时也要停止后台服务
	waited := false
	defer func() {
		if !waited {
			g.Cancel(nil)
			_ = g.Wait()
		}
	}()

	userErr := a.callRun(gctx, cfg)
	g.Cancel(nil)
	groupErr := g.Wait()
	waited = true

	signaled := errors.Is(groupErr, xrun.ErrSignal)
	if userErr != nil && !(signaled && errors.Is(userErr, context.Canceled)) {
		return fmt.Errorf("%w: %w", ErrUserRun, userErr)
	}
	if signaled {
		logger.Info(ctx, "stopped by signal", slog.String("signal", groupErr.Error()))
		return nil
	}
	return groupErr
}

// callRun 执行 run；panic 时记录、刷新日志并等待 PanicDelay 后重新 panic。
func (a *app[A, C]) callRun(ctx context.Context, cfg C) error {
	defer func() {
		if r := recover(); r != nil {
			a.logs.logger.Error(ctx, "detected panic, sleeping 1s", slog.String("panic", fmt.Sprint(r)))
			_ = a.logs.flush()
			panicSleep(PanicDelay)
			panic(r)
		}
	}()
	return a.run(ctx, a.args, cfg)
}

// onConfigChange 配置文件变化后应用新的日志级别，其余配置需重启生效。
func (a *app[A, C]) onConfigChange(src xconf.Config, err error) {
	ctx := context.Background()
	logger := a.logs.logger
	if err != nil {
		logger.Warn(ctx, "config reload failed", xlog.Err(err))
		return
	}
	next, err := decodeConfig(src, a.newConfig)
	if err != nil {
		logger.Warn(ctx, "config reload failed", xlog.Err(err))
		return
	}
	level, err := xlog.ParseLevel(next.Common().LogLevel)
	if err != nil {
		logger.Warn(ctx, "ignoring reloaded log_level", xlog.Err(err))
		return
	}
	if level == logger.GetLevel() {
		return
	}
	logger.SetLevel(level)
	logger.Info(ctx, "log level changed", slog.String("level", level.String()))
}

// shutdown 关闭日志并恢复全局 logger，只执行一次。
func (a *app[A, C]) shutdown() error {
	a.shutdownOnce.Do(func() {
		if a.logs == nil {
			return
		}
		if a.prevDefault != nil {
			xlog.SetDefault(a.prevDefault)
		}
		a.shutdownErr = a.logs.close()
	})
	return a.shutdownErr
}
