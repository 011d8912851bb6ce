package xrotate

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/omeyang/xboot/pkg/util/xfile"
)

// Category 日志分类，决定记录写入哪个文件
type Category string

// 内置分类
const (
	// CategoryDefault 默认分类（未标记分类的记录）
	CategoryDefault Category = ""

	// CategoryMetrics 指标日志
	CategoryMetrics Category = "METRICS"

	// CategoryAlerts 运维告警
	CategoryAlerts Category = "ALERTS"

	// CategoryNotifications 开发通知
	CategoryNotifications Category = "NOTIFICATIONS"
)

// 默认轮转参数
const (
	// DefaultRollSize 单个文件最大字节数
	DefaultRollSize int64 = 2_000_000_000

	// DefaultRollInterval 按时间轮转的周期（本地时间自然日）
	DefaultRollInterval = 24 * time.Hour

	// fileTimeLayout 文件名中的时间部分，精确到分钟
	fileTimeLayout = "20060102-1504"
)

// Output 一个输出流：分类 → 目录 + 文件名后缀
type Output struct {
	Category Category
	Dir      string
	Suffix   string
}

// path 返回该输出在 now 时刻应创建的文件路径
func (o Output) path(baseName string, now time.Time) string {
	name := fmt.Sprintf("%s-%s%s.log", now.Format(fileTimeLayout), baseName, o.Suffix)
	return filepath.Join(o.Dir, name)
}

// RollConfig Roller 配置，进程生命周期内不变
//
// Outputs 的顺序有意义：找不到匹配分类的记录写入最后一个输出，
// 因此默认分类的输出应放在最后。
type RollConfig struct {
	BaseName     string
	RollSize     int64
	RollInterval time.Duration
	Outputs      []Output
}

// DefaultOutputs 返回标准的四路输出
//
// METRICS 写入 logDir，ALERTS 与 NOTIFICATIONS 写入 alertDir，
// 其余记录写入 logDir 的默认文件。
func DefaultOutputs(logDir, alertDir string) []Output {
	return []Output{
		{Category: CategoryMetrics, Dir: logDir, Suffix: "_metrics"},
		{Category: CategoryAlerts, Dir: alertDir, Suffix: "_alerts"},
		{Category: CategoryNotifications, Dir: alertDir, Suffix: "_devnotification"},
		{Category: CategoryDefault, Dir: logDir, Suffix: ""},
	}
}

// NewRollConfig 使用默认大小和周期创建配置
func NewRollConfig(baseName string, outputs []Output) RollConfig {
	return RollConfig{
		BaseName:     baseName,
		RollSize:     DefaultRollSize,
		RollInterval: DefaultRollInterval,
		Outputs:      outputs,
	}
}

// validate 校验配置并返回规范化后的副本
func (c RollConfig) validate() (RollConfig, error) {
	if err := xfile.CheckFileName(c.BaseName, false); err != nil {
		return c, fmt.Errorf("%w: base name: %w", ErrInvalidConfig, err)
	}
	if c.RollSize <= 0 {
		return c, fmt.Errorf("%w: roll size must be positive, got %d", ErrInvalidConfig, c.RollSize)
	}
	if c.RollInterval <= 0 {
		return c, fmt.Errorf("%w: roll interval must be positive, got %s", ErrInvalidConfig, c.RollInterval)
	}
	if len(c.Outputs) == 0 {
		return c, fmt.Errorf("%w: no outputs configured", ErrInvalidConfig)
	}

	outputs := make([]Output, len(c.Outputs))
	hasDefault := false
	for i, o := range c.Outputs {
		dir, err := xfile.CleanDir(o.Dir)
		if err != nil {
			return c, fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, o.Category, err)
		}
		if err := xfile.CheckFileName(o.Suffix, true); err != nil {
			return c, fmt.Errorf("%w: output %q suffix: %w", ErrInvalidConfig, o.Category, err)
		}
		if o.Category == CategoryDefault {
			hasDefault = true
		}
		outputs[i] = Output{Category: o.Category, Dir: dir, Suffix: o.Suffix}
	}
	if !hasDefault {
		return c, fmt.Errorf("%w: no default output", ErrInvalidConfig)
	}

	c.Outputs = outputs
	return c, nil
}
