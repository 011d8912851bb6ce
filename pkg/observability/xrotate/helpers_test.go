package xrotate

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testZone 测试使用的固定时区，避免依赖运行环境的本地时区
var testZone = time.FixedZone("CST", 8*3600)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// errorRecorder 收集 Roller 上报的错误
type errorRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *errorRecorder) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *errorRecorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //#nosec G304 -- 测试临时目录
	require.NoError(t, err)
	return string(data)
}

func listLogs(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	return matches
}

func line(n int, fill byte) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	b[n-1] = '\n'
	return string(b)
}

func rec(category Category, l string) Record {
	return Record{Category: category, Line: l, Command: CommandRecord}
}
