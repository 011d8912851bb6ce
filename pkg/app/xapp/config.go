package xapp

import (
	"errors"
	"fmt"

	"github.com/omeyang/xboot/pkg/config/xconf"
	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/util/xfile"
)

// Config 应用配置。
//
// 应用配置通常嵌入 CommonConfig：
//
//	type MyConfig struct {
//	    xapp.CommonConfig `koanf:"common"`
//	    InputPath  string `koanf:"input_path"`
//	    OutputPath string `koanf:"output_path"`
//	}
type Config interface {
	// Common 返回日志等公共配置。
	Common() *CommonConfig
	// Validate 校验配置。prodRun 为 false（--validate）时不应检查外部文件是否存在。
	Validate(prodRun bool) error
}

// CommonConfig 所有应用共有的配置。
type CommonConfig struct {
	LogChannelSize int    `koanf:"log_channel_size"`
	LogLevel       string `koanf:"log_level"`
	LogPath        string `koanf:"log_path"`
	AlertsPath     string `koanf:"alerts_path"`

	// MaxOpenFiles 非 0 时启动时把最大打开文件数提升到至少该值
	MaxOpenFiles uint64 `koanf:"max_open_files"`
}

// Common 实现 Config。
func (c *CommonConfig) Common() *CommonConfig {
	return c
}

// Level 返回解析后的日志级别，无法解析时返回 Info。
func (c *CommonConfig) Level() xlog.Level {
	level, err := xlog.ParseLevel(c.LogLevel)
	if err != nil {
		return xlog.LevelInfo
	}
	return level
}

// Validate 实现 Config：日志队列长度为正、级别可解析、路径非空且合法。
// prodRun 为 true 时日志目录必须已存在。
func (c *CommonConfig) Validate(prodRun bool) error {
	var errs []error
	if c.LogChannelSize <= 0 {
		errs = append(errs, fmt.Errorf("log_channel_size must be positive, got %d", c.LogChannelSize))
	}
	if _, err := xlog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	for _, p := range []struct{ key, dir string }{
		{"log_path", c.LogPath},
		{"alerts_path", c.AlertsPath},
	} {
		if p.dir == "" {
			errs = append(errs, fmt.Errorf("%s is empty", p.key))
			continue
		}
		if _, err := xfile.CleanDir(p.dir); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.key, err))
			continue
		}
		if prodRun {
			if err := xfile.RequireDir(p.dir); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.key, err))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadConfig 从 path 读取配置到 newConfig() 返回的实例。
//
// 文件不存在或不可读返回 ErrConfigOpen，无法解析返回 ErrConfigInvalid。
// strict 为 true 时未知的配置键也视为无效。
func LoadConfig[C Config](path string, newConfig func() C, strict bool) (C, xconf.Config, error) {
	var zero C
	src, err := xconf.New(path, xconf.WithStrict(strict))
	if err != nil {
		if errors.Is(err, xconf.ErrParseFailed) || errors.Is(err, xconf.ErrUnsupportedFormat) {
			return zero, nil, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}
		return zero, nil, fmt.Errorf("%w %s: %w", ErrConfigOpen, path, err)
	}
	cfg, err := decodeConfig(src, newConfig)
	if err != nil {
		return zero, nil, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, src, nil
}

func decodeConfig[C Config](src xconf.Config, newConfig func() C) (C, error) {
	cfg := newConfig()
	if err := src.Unmarshal("", cfg); err != nil {
		var zero C
		return zero, err
	}
	return cfg, nil
}

// validateConfig 执行配置校验，失败时包装为 ErrConfigInvalid。
func validateConfig(path string, cfg Config, prodRun bool) error {
	if err := cfg.Validate(prodRun); err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return nil
}
