package xapp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/util/xproc"
)

// readBuildInfo 测试中可替换
var readBuildInfo = debug.ReadBuildInfo

// buildInfoLines 返回构建信息的文本行：Go 版本、主模块、构建设置（含 VCS 信息）、依赖。
func buildInfoLines() ([]string, error) {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return nil, ErrBuildInfo
	}

	lines := []string{
		"Build info:",
		"Executable: " + xproc.ProcessName(),
		"Go version: " + info.GoVersion,
		fmt.Sprintf("Main module: %s %s", info.Main.Path, info.Main.Version),
	}
	for _, s := range info.Settings {
		lines = append(lines, fmt.Sprintf("Build setting: %s=%s", s.Key, s.Value))
	}
	lines = append(lines, "Dependencies:")
	for _, dep := range info.Deps {
		line := fmt.Sprintf("    %s %s", dep.Path, dep.Version)
		if dep.Replace != nil {
			line += fmt.Sprintf(" => %s %s", dep.Replace.Path, dep.Replace.Version)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// PrintBuildInfo 把构建信息打印到 w，二进制中没有构建信息时返回 ErrBuildInfo。
func PrintBuildInfo(w io.Writer) error {
	lines, err := buildInfoLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// LogBuildInfo 以 Info 级别逐行记录构建信息。
func LogBuildInfo(ctx context.Context, l xlog.Logger) error {
	lines, err := buildInfoLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		l.Info(ctx, line)
	}
	return nil
}

// buildAttrs 返回启动日志中附带的版本摘要。
func buildAttrs() []slog.Attr {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return nil
	}
	attrs := []slog.Attr{slog.String("go", info.GoVersion), slog.String("module", info.Main.Path)}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			attrs = append(attrs, slog.String("revision", s.Value))
		}
	}
	return attrs
}
