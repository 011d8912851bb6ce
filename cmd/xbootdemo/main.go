// xbootdemo 演示基于 xapp 的守护进程：把 input_path 复制到 output_path。
//
// 用法:
//
//	xbootdemo [-c xbootdemo.yaml] [-f | -s] [-a] [-v] [-h]
//
// 配置示例（xbootdemo.yaml）:
//
//	common:
//	  log_channel_size: 1024
//	  log_level: debug
//	  log_path: /var/log/xbootdemo
//	  alerts_path: /var/log/alerts
//	input_path: /data/in.txt
//	output_path: /data/out.txt
//
// 复制失败时写入 ALERTS 类别；向进程发送 SIGUSR1 可立即轮转日志文件。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omeyang/xboot/pkg/app/xapp"
	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/util/xfile"
)

// Config xbootdemo 的配置。
type Config struct {
	xapp.CommonConfig `koanf:"common"`
	InputPath         string `koanf:"input_path"`
	OutputPath        string `koanf:"output_path"`
}

// Validate 实现 xapp.Config。
func (c *Config) Validate(prodRun bool) error {
	errs := []error{c.CommonConfig.Validate(prodRun)}
	if c.InputPath == "" || c.OutputPath == "" {
		errs = append(errs, errors.New("input_path and output_path are required"))
	}
	if c.InputPath != "" && filepath.Clean(c.InputPath) == filepath.Clean(c.OutputPath) {
		errs = append(errs, errors.New("input_path and output_path must differ"))
	}
	if prodRun && c.InputPath != "" {
		if _, err := os.Stat(c.InputPath); err != nil {
			errs = append(errs, fmt.Errorf("input_path: %w", err))
		}
	}
	return errors.Join(errs...)
}

func main() {
	xapp.Run(func() *Config { return &Config{} }, copyFile)
}

func copyFile(ctx context.Context, cfg *Config) error {
	logger := xlog.Default()
	logger.Info(ctx, "running copy", slog.String("input", cfg.InputPath), slog.String("output", cfg.OutputPath))

	n, err := copyPath(cfg.InputPath, cfg.OutputPath)
	if err != nil {
		xlog.Alert(ctx, logger, "COPY-001", "could not copy", xlog.Err(err))
		return err
	}
	xlog.Metric(ctx, logger, "copied", xlog.Count(n))
	logger.Debug(ctx, "copy finished")
	return nil
}

func copyPath(src, dst string) (int64, error) {
	if err := xfile.EnsureDir(dst); err != nil {
		return 0, err
	}
	//#nosec G304 -- 路径来自配置
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	//#nosec G304 -- 路径来自配置
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
