package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 文件变更回调函数
// err 非 nil 表示重载失败或监视出错，此时 cfg 保持旧配置
type WatchCallback func(cfg Config, err error)

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce 设置防抖时间，时间窗内的多次变更只触发一次重载
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watcher 配置文件监视器
//
// 监视配置文件所在目录而不是文件本身：编辑器保存时常见"写临时文件再 rename"，
// 直接监视文件会在第一次替换后丢失后续事件。
type Watcher struct {
	cfg      *koanfConfig
	fs       *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// Watch 创建配置文件监视器，调用 Run 开始监视
func Watch(cfg Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported config type %T", ErrWatchFailed, cfg)
	}
	if kc.path == "" {
		return nil, ErrNotReloadable
	}

	options := &watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(options)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}
	dir := filepath.Dir(kc.path)
	if err := fs.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("%w: directory %s: %w", ErrWatchFailed, dir, err), fs.Close())
	}

	return &Watcher{
		cfg:      kc,
		fs:       fs,
		callback: callback,
		debounce: options.debounce,
	}, nil
}

// Run 处理文件事件直到 ctx 取消，返回前停止监视，可作为 xrun 服务运行
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.Stop() }()

	filename := filepath.Base(w.cfg.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, filename)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.notify(fmt.Errorf("%w: %w", ErrWatchFailed, err))
		}
	}
}

// Stop 停止监视并取消待触发的重载；可重复调用
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	return w.fs.Close()
}

// handleEvent 只处理目标文件的写入、创建、改名事件，并做防抖
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	err := w.cfg.Reload()
	w.notify(err)
}

// notify 已停止时不回调
func (w *Watcher) notify(err error) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped || w.callback == nil {
		return
	}
	w.callback(w.cfg, err)
}
