package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	filename := filepath.Join(base, "a", "b", "app.log")

	require.NoError(t, EnsureDir(filename))

	info, err := os.Stat(filepath.Dir(filename))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// 幂等
	assert.NoError(t, EnsureDir(filename))
}

func TestEnsureDirWithPerm_Errors(t *testing.T) {
	assert.ErrorIs(t, EnsureDirWithPerm("", DefaultDirPerm), ErrEmptyPath)
	assert.ErrorIs(t, EnsureDirWithPerm("a\x00/b.log", DefaultDirPerm), ErrNullByte)
	assert.ErrorIs(t, EnsureDirWithPerm("/tmp/x/b.log", 0640), ErrInvalidPerm)
}

func TestEnsureDir_CurrentDir(t *testing.T) {
	// 没有父目录部分时无需创建
	assert.NoError(t, EnsureDir("app.log"))
}

func TestRequireDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RequireDir(dir))

	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	assert.ErrorIs(t, RequireDir(file), ErrNotDir)

	err := RequireDir(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))
}
