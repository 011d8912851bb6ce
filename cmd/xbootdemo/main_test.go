package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xboot/pkg/app/xapp"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o600))
	return &Config{
		CommonConfig: xapp.CommonConfig{LogChannelSize: 16, LogLevel: "info", LogPath: dir, AlertsPath: dir},
		InputPath:    in,
		OutputPath:   filepath.Join(dir, "out", "out.txt"),
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate(true))

	same := *cfg
	same.OutputPath = same.InputPath
	assert.ErrorContains(t, same.Validate(false), "must differ")

	missing := *cfg
	missing.InputPath = filepath.Join(t.TempDir(), "gone.txt")
	assert.NoError(t, missing.Validate(false))
	assert.ErrorContains(t, missing.Validate(true), "input_path")

	empty := *cfg
	empty.OutputPath = ""
	assert.ErrorContains(t, empty.Validate(false), "required")
}

func TestCopyFile(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, copyFile(context.Background(), cfg))

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFile_MissingInput(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputPath = filepath.Join(t.TempDir(), "gone.txt")
	assert.Error(t, copyFile(context.Background(), cfg))
}
