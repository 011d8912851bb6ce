package xproc

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 以下测试修改全局 os.Args 与 osExecutable，不可使用 t.Parallel()。
func withArgs(t *testing.T, args []string, exe string, exeErr error) {
	t.Helper()
	origArgs, origExe := os.Args, osExecutable
	t.Cleanup(func() {
		os.Args, osExecutable = origArgs, origExe
		ResetNames()
	})
	os.Args = args
	osExecutable = func() (string, error) { return exe, exeErr }
	ResetNames()
}

func TestProcessID(t *testing.T) {
	assert.Equal(t, os.Getpid(), ProcessID())
}

func TestProcessName(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		exe    string
		exeErr error
		want   string
	}{
		{name: "可执行文件优先", args: []string{"/opt/bin/copyd-eu"}, exe: "/opt/bin/copyd", want: "copyd"},
		{name: "回退到 Args[0]", args: []string{"./relative/app"}, exeErr: errors.New("no exe"), want: "app"},
		{name: "全部无效", args: nil, exeErr: errors.New("no exe"), want: ""},
		{name: "空 Args[0]", args: []string{""}, exe: "/", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args, tt.exe, tt.exeErr)
			assert.Equal(t, tt.want, ProcessName())
		})
	}
}

func TestInstanceName(t *testing.T) {
	tests := []struct {
		name string
		args []string
		exe  string
		want string
	}{
		{name: "符号链接名", args: []string{"/opt/bin/copyd-eu"}, exe: "/opt/bin/copyd", want: "copyd-eu"},
		{name: "相对路径", args: []string{"./copyd"}, exe: "/opt/bin/copyd", want: "copyd"},
		{name: "回退到可执行文件", args: []string{""}, exe: "/opt/bin/copyd", want: "copyd"},
		{name: "无 Args", args: []string{}, exe: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args, tt.exe, nil)
			assert.Equal(t, tt.want, InstanceName())
		})
	}
}

func TestInstanceName_Cached(t *testing.T) {
	withArgs(t, []string{"/bin/first"}, "", nil)
	assert.Equal(t, "first", InstanceName())

	os.Args = []string{"/bin/second"}
	assert.Equal(t, "first", InstanceName())
}
