package xrotate

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xboot/pkg/util/xfile"
)

// RollOption Roller 配置选项
type RollOption func(*rollOptions)

type rollOptions struct {
	flag     *RotationFlag
	now      func() time.Time
	perm     os.FileMode
	onError  func(error)
	provider metric.MeterProvider
	mkdir    bool
}

// WithRotationFlag 设置外部轮转标志，默认使用进程级标志
func WithRotationFlag(flag *RotationFlag) RollOption {
	return func(o *rollOptions) {
		if flag != nil {
			o.flag = flag
		}
	}
}

// WithClock 设置时钟，用于测试
func WithClock(now func() time.Time) RollOption {
	return func(o *rollOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFilePerm 设置新建日志文件的权限，默认 0640
func WithFilePerm(perm os.FileMode) RollOption {
	return func(o *rollOptions) {
		if perm != 0 {
			o.perm = perm
		}
	}
}

// WithRollErrorHandler 设置非致命错误（轮转失败、刷新失败）的回调
//
// 回调在 Roller 所在协程同步执行，不能再向同一个 Roller 写日志。
// 默认输出到 stderr。
func WithRollErrorHandler(fn func(error)) RollOption {
	return func(o *rollOptions) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// WithMeterProvider 设置 OTel MeterProvider，默认使用全局 provider
func WithMeterProvider(p metric.MeterProvider) RollOption {
	return func(o *rollOptions) {
		o.provider = p
	}
}

// WithCreateDirs 启动时创建缺失的输出目录，默认要求目录已存在
func WithCreateDirs(enable bool) RollOption {
	return func(o *rollOptions) {
		o.mkdir = enable
	}
}

func defaultRollErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "xrotate: %v\n", err)
}

// Roller 按分类写入多路日志文件，并按信号、时间、大小整组轮转
//
// Roller 由单个协程独占使用（通常是分发器的工作协程），不是并发安全的。
// 跨协程的唯一交互是 RotationFlag。
type Roller struct {
	cfg     RollConfig
	current *fileSet
	flag    *RotationFlag
	now     func() time.Time
	perm    os.FileMode
	onError func(error)
	metrics *rollMetrics
	closed  bool
}

// 编译时断言
var _ Sink = (*Roller)(nil)

// NewRoller 校验配置并打开第一组文件
//
// 输出目录必须已存在（WithCreateDirs 除外）。任一文件无法创建时返回
// ErrFileInit，不会留下打开的句柄。
func NewRoller(cfg RollConfig, opts ...RollOption) (*Roller, error) {
	o := rollOptions{
		flag:    GlobalRotationFlag(),
		now:     time.Now,
		perm:    DefaultFilePerm,
		onError: defaultRollErrorHandler,
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	start := o.now()
	for _, out := range cfg.Outputs {
		if o.mkdir {
			err = xfile.EnsureDir(out.path(cfg.BaseName, start))
		} else {
			err = xfile.RequireDir(out.Dir)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: output %q: %w", ErrFileInit, out.Category, err)
		}
	}

	m, err := newRollMetrics(o.provider)
	if err != nil {
		return nil, err
	}

	set, err := openFileSet(&cfg, start, o.perm)
	if err != nil {
		return nil, err
	}

	return &Roller{
		cfg:     cfg,
		current: set,
		flag:    o.flag,
		now:     o.now,
		perm:    o.perm,
		onError: o.onError,
		metrics: m,
	}, nil
}

// Process 处理一批记录
//
// 批处理前检查一次信号和时间轮转，之后逐条写入，写入前检查大小轮转。
// 刷新与关闭命令会刷新当前文件组。写入失败返回包装 ErrIOFailure 的错误，
// 调用方应视为致命；轮转失败和刷新失败只通过错误回调上报。
func (r *Roller) Process(batch []Record) error {
	if r.closed {
		return ErrClosed
	}

	r.checkRoll()

	for i := range batch {
		rec := &batch[i]
		switch rec.Command {
		case CommandRecord:
			if err := r.writeLine(rec.Category, rec.Line); err != nil {
				r.current.flush(r.onError)
				return err
			}
		case CommandFlush, CommandShutdown:
			r.current.flush(r.onError)
		}
	}
	return nil
}

// checkRoll 处理信号和时间触发；信号优先，一批最多轮转一次
func (r *Roller) checkRoll() {
	if r.flag.TakeAndClear() {
		if err := r.rotate(TriggerSignal); err != nil {
			r.onError(err)
		}
		return
	}

	now := r.now()
	if now.After(r.current.validUntil) {
		if err := r.rotate(TriggerTime); err != nil {
			r.onError(err)
			// 推迟到下一个周期再尝试，避免每批都重试
			r.current.validUntil = nextRollTime(now, r.cfg.RollInterval)
		}
	}
}

// writeLine 把一行写入分类对应的文件，必要时先按大小轮转
func (r *Roller) writeLine(category Category, line string) error {
	target := r.current.target(category)
	if exceedsSize(target.written, len(line), r.cfg.RollSize) {
		if err := r.rotate(TriggerSize); err != nil {
			r.onError(err)
			// 轮转失败时减半计数，延后下一次尝试
			target.written /= 2
		}
		target = r.current.target(category)
	}
	if err := target.write(line); err != nil {
		return err
	}
	r.metrics.wrote(category, len(line))
	return nil
}

// rotate 整组轮转：先创建新文件组，成功后再关闭旧组
//
// 失败时旧文件组保持不变并继续使用。
func (r *Roller) rotate(trigger Trigger) error {
	next, err := openFileSet(&r.cfg, r.now(), r.perm)
	r.metrics.rotated(trigger, err)
	if err != nil {
		return fmt.Errorf("%s rotation: %w", trigger, err)
	}
	old := r.current
	r.current = next
	old.close(r.onError)
	return nil
}

// Close 刷新并关闭当前文件组，重复调用返回 ErrClosed
func (r *Roller) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true

	var errs []error
	r.current.close(func(err error) { errs = append(errs, err) })
	return errors.Join(errs...)
}

// Paths 返回当前文件组的路径，顺序与配置的输出一致
func (r *Roller) Paths() []string {
	return r.current.paths()
}

// ValidUntil 返回当前文件组的有效期
func (r *Roller) ValidUntil() time.Time {
	return r.current.validUntil
}
