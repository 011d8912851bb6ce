package xproc

import (
	"os"
	"path/filepath"
	"sync"
)

// osExecutable 是 os.Executable 的包级变量，测试中可替换。
var osExecutable = os.Executable

var (
	processNameOnce  sync.Once
	processNameValue string

	instanceNameOnce  sync.Once
	instanceNameValue string
)

// ProcessID 返回当前进程 ID。
func ProcessID() int {
	return os.Getpid()
}

// baseName 提取路径的基础文件名。
// 对 [filepath.Base] 返回的特殊值（"."、".."、路径分隔符）返回空字符串。
func baseName(path string) string {
	if path == "" {
		return ""
	}
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

func argv0() string {
	if len(os.Args) == 0 {
		return ""
	}
	return os.Args[0]
}

func executable() string {
	exe, err := osExecutable()
	if err != nil {
		return ""
	}
	return exe
}

// ProcessName 返回可执行文件名（不含路径），结果在首次调用时缓存。
//
// 优先使用 [os.Executable]（符号链接已解析），失败时回退到 os.Args[0]。
// 所有来源均无效时返回空字符串。
func ProcessName() string {
	processNameOnce.Do(func() {
		processNameValue = firstName(executable(), argv0())
	})
	return processNameValue
}

// InstanceName 返回实例名：启动时 os.Args[0] 的基础文件名，结果在首次调用时缓存。
//
// 与 ProcessName 不同，InstanceName 不解析符号链接，同一二进制通过不同的
// 符号链接启动即为不同实例，各自使用 <instance>.yaml 配置和独立的日志文件名。
// os.Args[0] 无效时回退到可执行文件名。
func InstanceName() string {
	instanceNameOnce.Do(func() {
		instanceNameValue = firstName(argv0(), executable())
	})
	return instanceNameValue
}

func firstName(paths ...string) string {
	for _, p := range paths {
		if name := baseName(p); name != "" {
			return name
		}
	}
	return ""
}
