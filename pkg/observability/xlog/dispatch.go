package xlog

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// 分发器默认参数
const (
	// DefaultQueueSize 默认队列容量
	DefaultQueueSize = 1024

	// DefaultMaxBatch 单批最多处理的记录数
	DefaultMaxBatch = 256
)

// ErrDispatcherClosed 分发器已关闭
var ErrDispatcherClosed = errors.New("xlog: dispatcher is closed")

// DispatcherOption 分发器配置选项
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	queueSize int
	maxBatch  int
	fatal     func(error)
}

// WithQueueSize 设置队列容量，<= 0 时使用默认值
func WithQueueSize(n int) DispatcherOption {
	return func(o *dispatcherOptions) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithMaxBatch 设置单批最多处理的记录数，<= 0 时使用默认值
func WithMaxBatch(n int) DispatcherOption {
	return func(o *dispatcherOptions) {
		if n > 0 {
			o.maxBatch = n
		}
	}
}

// WithFatalHandler 设置 Sink 处理失败时的回调
//
// 默认向 stderr 输出错误并以状态码 1 退出进程：日志管道失效后继续运行
// 会静默丢失日志。
func WithFatalHandler(fn func(error)) DispatcherOption {
	return func(o *dispatcherOptions) {
		if fn != nil {
			o.fatal = fn
		}
	}
}

// exitFunc 进程退出函数，测试中可替换
var exitFunc = os.Exit

func defaultFatalHandler(err error) {
	fmt.Fprintf(os.Stderr, "xlog: log pipeline failed: %v\n", err)
	exitFunc(1)
}

// envelope 队列中的一项，ack 非 nil 时处理完成后关闭
type envelope struct {
	rec xrotate.Record
	ack chan struct{}
}

// Dispatcher 有界队列 + 单工作协程，把记录按批交给 Sink
//
// 多个协程可并发 Submit；Sink 只被工作协程调用。
// 队列满时 Submit 阻塞，形成背压而不是丢弃。
type Dispatcher struct {
	sink     xrotate.Sink
	queue    chan envelope
	maxBatch int
	fatal    func(error)
	done     chan struct{}

	mu     sync.RWMutex // 保护 closed；Submit 持读锁入队，Close 持写锁置位
	closed bool

	closeOnce sync.Once
	closeErr  error
}

// NewDispatcher 创建分发器并启动工作协程
func NewDispatcher(sink xrotate.Sink, opts ...DispatcherOption) *Dispatcher {
	o := dispatcherOptions{
		queueSize: DefaultQueueSize,
		maxBatch:  DefaultMaxBatch,
		fatal:     defaultFatalHandler,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dispatcher{
		sink:     sink,
		queue:    make(chan envelope, o.queueSize),
		maxBatch: o.maxBatch,
		fatal:    o.fatal,
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit 投递一条记录，队列满时阻塞
func (d *Dispatcher) Submit(rec xrotate.Record) error {
	return d.enqueue(envelope{rec: rec})
}

// Flush 投递刷新命令并等待工作协程处理完成
//
// 返回时此前投递的所有记录都已交给 Sink 并刷新。
func (d *Dispatcher) Flush() error {
	ack := make(chan struct{})
	if err := d.enqueue(envelope{rec: xrotate.Record{Command: xrotate.CommandFlush}, ack: ack}); err != nil {
		return err
	}
	<-ack
	return nil
}

func (d *Dispatcher) enqueue(env envelope) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	d.queue <- env
	return nil
}

// Close 投递关闭命令，等待队列处理完毕后关闭 Sink
//
// 可重复调用，后续调用返回首次关闭的结果。
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		// closed 置位后不会再有新的入队，工作协程仍在消费，不会永久阻塞
		d.queue <- envelope{rec: xrotate.Record{Command: xrotate.CommandShutdown}}
		<-d.done
		d.closeErr = d.sink.Close()
	})
	return d.closeErr
}

// run 工作协程：阻塞取一条，非阻塞地凑满一批，交给 Sink
func (d *Dispatcher) run() {
	defer close(d.done)

	batch := make([]xrotate.Record, 0, d.maxBatch)
	var acks []chan struct{}
	for {
		batch = batch[:0]
		acks = acks[:0]

		env := <-d.queue
		batch, acks = appendEnvelope(batch, acks, env)
		shutdown := env.rec.Command == xrotate.CommandShutdown

	drain:
		for !shutdown && len(batch) < d.maxBatch {
			select {
			case env = <-d.queue:
				batch, acks = appendEnvelope(batch, acks, env)
				shutdown = env.rec.Command == xrotate.CommandShutdown
			default:
				break drain
			}
		}

		if err := d.sink.Process(batch); err != nil {
			d.fatal(err)
		}
		for _, ack := range acks {
			close(ack)
		}
		if shutdown {
			return
		}
	}
}

func appendEnvelope(batch []xrotate.Record, acks []chan struct{}, env envelope) ([]xrotate.Record, []chan struct{}) {
	batch = append(batch, env.rec)
	if env.ack != nil {
		acks = append(acks, env.ack)
	}
	return batch, acks
}
