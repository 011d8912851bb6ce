package xapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.opentelemetry.io/otel"

	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// 内部诊断日志的轮转参数
const (
	diagMaxSizeMB  = 10
	diagMaxBackups = 3
)

// logging 持有应用日志及其附属资源。
type logging struct {
	logger  xlog.LoggerWithLevel
	cleanup func() error

	// 以下仅文件日志使用
	roller  *xrotate.Roller
	bridge  *xrotate.SignalBridge
	diag    xlog.Logger
	closeFn func() error
}

// initStdoutLogging 日志写入 w，不区分类别。
func initStdoutLogging(cc *CommonConfig, instance string, w io.Writer) (*logging, error) {
	logger, cleanup, err := xlog.New().
		SetLevel(cc.Level()).
		SetOrigin(instance).
		SetSink(xlog.NewConsoleSink(w), xlog.WithQueueSize(cc.LogChannelSize)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: console: %w", ErrLogInit, err)
	}
	return &logging{logger: logger, cleanup: cleanup}, nil
}

// initFileLogging 按类别写入 log_path 与 alerts_path 下的轮转文件，并安装 SIGUSR1 轮转信号。
//
// 轮转失败等内部错误不能再写回同一个 Roller，改由诊断日志记录：
// 同时输出到 stderr 与 <log_path>/<instance>_xboot.log。
func initFileLogging(cc *CommonConfig, instance string, diagOut io.Writer) (*logging, error) {
	// 转为绝对路径：log_path 可以是 "../logs" 这样的相对目录
	diagFile, err := filepath.Abs(filepath.Join(cc.LogPath, instance+"_xboot.log"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogInit, err)
	}
	rotator, err := xrotate.NewLumberjack(diagFile,
		xrotate.WithMaxSize(diagMaxSizeMB),
		xrotate.WithMaxBackups(diagMaxBackups),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLogInit, diagFile, err)
	}
	base, _, err := xlog.New().SetOutput(io.MultiWriter(diagOut, rotator)).Build()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: diagnostics: %w", ErrLogInit, err), rotator.Close())
	}
	diag := base.With(xlog.Component("xboot"))

	flag := xrotate.GlobalRotationFlag()
	roller, err := xrotate.NewRoller(
		xrotate.NewRollConfig(instance, xrotate.DefaultOutputs(cc.LogPath, cc.AlertsPath)),
		xrotate.WithRotationFlag(flag),
		xrotate.WithMeterProvider(otel.GetMeterProvider()),
		xrotate.WithRollErrorHandler(func(err error) {
			diag.Error(context.Background(), "log rotation failed", xlog.Err(err))
		}),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrLogInit, err), rotator.Close())
	}

	logger, cleanup, err := xlog.New().
		SetLevel(cc.Level()).
		SetOrigin(instance).
		SetSink(roller, xlog.WithQueueSize(cc.LogChannelSize), xlog.WithFatalHandler(exitOnLogFailure(diag))).
		SetOnError(func(err error) {
			diag.Warn(context.Background(), "log record dropped", xlog.Err(err))
		}).
		Build()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrLogInit, err), roller.Close(), rotator.Close())
	}

	bridge, err := xrotate.NotifyRotation(flag)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrLogInit, err), cleanup(), rotator.Close())
	}

	return &logging{
		logger:  logger,
		cleanup: cleanup,
		roller:  roller,
		bridge:  bridge,
		diag:    diag,
		closeFn: rotator.Close,
	}, nil
}

// exitOnLogFailure 日志文件写入失败后记到诊断日志并以状态 1 退出。
func exitOnLogFailure(diag xlog.Logger) func(error) {
	return func(err error) {
		diag.Error(context.Background(), "log pipeline failed, exiting", xlog.Err(err))
		exitFunc(1)
	}
}

// flush 等待已提交的日志落盘。
func (l *logging) flush() error {
	if f, ok := l.logger.(xlog.Flusher); ok {
		return f.Flush()
	}
	return nil
}

// close 停止轮转信号、关闭日志与诊断日志文件。
func (l *logging) close() error {
	if l.bridge != nil {
		l.bridge.Stop()
	}
	err := l.cleanup()
	if l.closeFn != nil {
		err = errors.Join(err, l.closeFn())
	}
	return err
}
