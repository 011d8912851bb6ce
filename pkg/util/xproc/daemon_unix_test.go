//go:build unix

package xproc

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDaemon(t *testing.T, start func(*exec.Cmd) error, sid func() (int, error)) {
	t.Helper()
	origStart, origSid, origExe := startProcess, getsid, osExecutable
	t.Cleanup(func() {
		startProcess, getsid, osExecutable = origStart, origSid, origExe
	})
	if start != nil {
		startProcess = start
	}
	if sid != nil {
		getsid = sid
	}
}

func TestDaemonize_Parent(t *testing.T) {
	var started *exec.Cmd
	stubDaemon(t, func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}, nil)
	osExecutable = func() (string, error) { return "/opt/bin/copyd", nil }

	parent, err := Daemonize()
	require.NoError(t, err)
	assert.True(t, parent)

	require.NotNil(t, started)
	assert.Equal(t, "/opt/bin/copyd", started.Path)
	assert.Equal(t, os.Args, started.Args)
	assert.Contains(t, started.Env, DaemonEnv+"=1")
	require.NotNil(t, started.SysProcAttr)
	assert.True(t, started.SysProcAttr.Setsid)
	assert.Equal(t, os.Stderr, started.Stderr)
}

func TestDaemonize_StartFailed(t *testing.T) {
	stubDaemon(t, func(*exec.Cmd) error { return errors.New("fork: resource unavailable") }, nil)

	parent, err := Daemonize()
	assert.ErrorIs(t, err, ErrDaemonStart)
	assert.False(t, parent)

	osExecutable = func() (string, error) { return "", errors.New("no exe") }
	_, err = Daemonize()
	assert.ErrorIs(t, err, ErrDaemonStart)
}

func TestDaemonize_Child(t *testing.T) {
	stubDaemon(t, func(*exec.Cmd) error {
		t.Fatal("child must not start another process")
		return nil
	}, func() (int, error) { return os.Getpid(), nil })
	t.Setenv(DaemonEnv, "1")

	parent, err := Daemonize()
	require.NoError(t, err)
	assert.False(t, parent)
	_, set := os.LookupEnv(DaemonEnv)
	assert.False(t, set)
}

func TestDaemonize_ChildNotDetached(t *testing.T) {
	stubDaemon(t, nil, func() (int, error) { return os.Getpid() + 1, nil })
	t.Setenv(DaemonEnv, "1")

	_, err := Daemonize()
	assert.ErrorIs(t, err, ErrNotDetached)

	t.Setenv(DaemonEnv, "1")
	getsid = func() (int, error) { return 0, errors.New("esrch") }
	_, err = Daemonize()
	assert.ErrorIs(t, err, ErrNotDetached)
}
