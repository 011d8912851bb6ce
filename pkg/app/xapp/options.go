package xapp

import (
	"io"
	"os"
	"time"

	"github.com/omeyang/xboot/pkg/util/xproc"
)

const (
	// DefaultFlushInterval 定期刷新日志的间隔
	DefaultFlushInterval = 5 * time.Second

	// PanicDelay 运行函数 panic 后、重新 panic 前的等待时间，留给日志落盘
	PanicDelay = time.Second
)

// Option 配置 TryRun、Run 与 RunWithArgs。
type Option func(*options)

type options struct {
	argv          []string
	stdout        io.Writer
	stderr        io.Writer
	instance      string
	flushInterval time.Duration
	watchConfig   bool
}

func newOptions(opts []Option) *options {
	o := &options{
		argv:          os.Args,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		flushInterval: DefaultFlushInterval,
		watchConfig:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.instance == "" {
		o.instance = xproc.InstanceName()
	}
	return o
}

// WithArgv 设置待解析的命令行，argv[0] 为程序名。默认 os.Args。
func WithArgv(argv []string) Option {
	return func(o *options) {
		o.argv = argv
	}
}

// WithStdout 设置帮助、构建信息与 --stdout 日志的输出。默认 os.Stdout。
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stdout = w
		}
	}
}

// WithStderr 设置错误与内部诊断信息的输出。默认 os.Stderr。
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stderr = w
		}
	}
}

// WithInstance 设置实例名，默认取 InstanceName()。
func WithInstance(name string) Option {
	return func(o *options) {
		o.instance = name
	}
}

// WithFlushInterval 设置定期刷新日志的间隔。
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.flushInterval = d
		}
	}
}

// WithConfigWatch 设置是否监视配置文件并在运行时应用新的 log_level。默认开启。
func WithConfigWatch(enable bool) Option {
	return func(o *options) {
		o.watchConfig = enable
	}
}
