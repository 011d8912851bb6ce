package xlog

import (
	"sync"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

// recordingSink 记录收到的批次，可选地在 gate 关闭前阻塞 Process
type recordingSink struct {
	mu      sync.Mutex
	batches [][]xrotate.Record
	closed  int
	gate    chan struct{}
	entered chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{}
}

// newGatedSink 第一次 Process 进入后通知 entered，并阻塞到 gate 关闭
func newGatedSink() *recordingSink {
	return &recordingSink{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
}

func (s *recordingSink) Process(batch []xrotate.Record) error {
	if s.gate != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]xrotate.Record(nil), batch...))
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// records 返回所有普通记录，按处理顺序
func (s *recordingSink) records() []xrotate.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []xrotate.Record
	for _, b := range s.batches {
		for _, r := range b {
			if r.Command == xrotate.CommandRecord {
				out = append(out, r)
			}
		}
	}
	return out
}

func (s *recordingSink) batchSizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.batches))
	for i, b := range s.batches {
		out[i] = len(b)
	}
	return out
}

func (s *recordingSink) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// captureSubmitter 直接收集 LineHandler 的输出
type captureSubmitter struct {
	mu   sync.Mutex
	recs []xrotate.Record
	err  error
}

func (c *captureSubmitter) Submit(rec xrotate.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.recs = append(c.recs, rec)
	return nil
}

func (c *captureSubmitter) last() xrotate.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.recs) == 0 {
		return xrotate.Record{}
	}
	return c.recs[len(c.recs)-1]
}
