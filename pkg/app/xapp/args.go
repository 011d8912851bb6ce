package xapp

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

// Args 命令行参数。
//
// 应用可嵌入 CommonArgs 并覆盖 Flags 与 Bind 以增加自己的参数：
//
//	type MyArgs struct {
//	    xapp.CommonArgs
//	    Date string
//	}
//
//	func (a *MyArgs) Flags() []cli.Flag {
//	    return append(a.CommonArgs.Flags(), &cli.StringFlag{Name: "date", Aliases: []string{"d"}})
//	}
//
//	func (a *MyArgs) Bind(cmd *cli.Command) error {
//	    a.Date = cmd.String("date")
//	    return a.CommonArgs.Bind(cmd)
//	}
type Args interface {
	// Common 返回所有应用共有的参数。
	Common() *CommonArgs
	// Flags 返回需要注册的全部参数定义。
	Flags() []cli.Flag
	// Bind 在解析完成后从 cmd 读取参数值，可在此校验自定义参数。
	Bind(cmd *cli.Command) error
}

// CommonArgs 所有应用共有的命令行参数。
type CommonArgs struct {
	Help       bool   // -h, --help: 打印帮助
	Config     string // -c, --config: 配置文件路径，默认 <instance>.yaml
	Foreground bool   // -f, --foreground: 不转入后台，日志写文件
	Stdout     bool   // -s, --stdout: 不转入后台，日志写标准输出
	Validate   bool   // -a, --validate: 只校验配置
	Version    bool   // -v, --version: 打印构建信息
}

// Common 实现 Args。
func (a *CommonArgs) Common() *CommonArgs {
	return a
}

// Flags 实现 Args。
func (a *CommonArgs) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "help", Aliases: []string{"h"}, Usage: "print help"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file path", TakesFile: true},
		&cli.BoolFlag{Name: "foreground", Aliases: []string{"f"}, Usage: "run in foreground, log to files"},
		&cli.BoolFlag{Name: "stdout", Aliases: []string{"s"}, Usage: "run in foreground, log to stdout"},
		&cli.BoolFlag{Name: "validate", Aliases: []string{"a"}, Usage: "validate config and exit"},
		&cli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: "print build info"},
	}
}

// Bind 实现 Args。
func (a *CommonArgs) Bind(cmd *cli.Command) error {
	a.Help = cmd.Bool("help")
	a.Config = cmd.String("config")
	a.Foreground = cmd.Bool("foreground")
	a.Stdout = cmd.Bool("stdout")
	a.Validate = cmd.Bool("validate")
	a.Version = cmd.Bool("version")
	return nil
}

// String 用于启动日志。
func (a *CommonArgs) String() string {
	return fmt.Sprintf("{help:%t config:%q foreground:%t stdout:%t validate:%t version:%t}",
		a.Help, a.Config, a.Foreground, a.Stdout, a.Validate, a.Version)
}

// ParseArgs 解析 argv（argv[0] 为程序名）并绑定到 args。
// 设置了 --help 时把帮助打印到 w。
func ParseArgs(ctx context.Context, name string, argv []string, args Args, w io.Writer) error {
	cmd := &cli.Command{
		Name:        name,
		Usage:       "daemon",
		Flags:       args.Flags(),
		HideHelp:    true,
		HideVersion: true,
		Writer:      w,
		ErrWriter:   io.Discard,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return err
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("unexpected argument %q", cmd.Args().First())
			}
			if err := args.Bind(cmd); err != nil {
				return err
			}
			if args.Common().Help {
				return cli.ShowAppHelp(cmd)
			}
			return nil
		},
	}
	if err := cmd.Run(ctx, argv); err != nil {
		return fmt.Errorf("%w: %w", ErrCommandline, err)
	}
	return nil
}
