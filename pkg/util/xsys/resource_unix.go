//go:build unix

package xsys

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// 测试中可替换；替换后的测试不可并行
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

var fileLimitMu sync.Mutex

// RaiseFileLimit 把 RLIMIT_NOFILE 的 soft limit 提升到至少 limit，返回生效后的 soft limit。
//
// 当前值已不低于 limit 时不做修改。hard limit 不足时先尝试提升 hard limit
// （需要 CAP_SYS_RESOURCE），失败则退而把 soft limit 设为 hard limit，
// 此时返回值小于 limit 且 err 为 nil，调用方据此记录告警。
func RaiseFileLimit(limit uint64) (uint64, error) {
	if limit == 0 {
		return 0, ErrInvalidFileLimit
	}

	fileLimitMu.Lock()
	defer fileLimitMu.Unlock()

	var rl unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, fmt.Errorf("xsys: getrlimit RLIMIT_NOFILE: %w", err)
	}
	if rl.Cur >= limit {
		return rl.Cur, nil
	}

	want := unix.Rlimit{Cur: limit, Max: max(rl.Max, limit)}
	if err := setrlimit(unix.RLIMIT_NOFILE, &want); err == nil {
		return limit, nil
	}
	if rl.Cur == rl.Max {
		return rl.Cur, nil
	}
	capped := unix.Rlimit{Cur: rl.Max, Max: rl.Max}
	if err := setrlimit(unix.RLIMIT_NOFILE, &capped); err != nil {
		return rl.Cur, fmt.Errorf("xsys: setrlimit RLIMIT_NOFILE: %w", err)
	}
	return rl.Max, nil
}

// FileLimit 返回 RLIMIT_NOFILE 的 soft limit 与 hard limit。
func FileLimit() (soft, hard uint64, err error) {
	var rl unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, 0, fmt.Errorf("xsys: getrlimit RLIMIT_NOFILE: %w", err)
	}
	return rl.Cur, rl.Max, nil
}
