// Package cmd 命令行入口
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"twogether/bootstrap"
	btsConfig "twogether/config"
	"twogether/pkg/config"
)

// RootOptions 全局参数
type RootOptions struct {
	Env string
}

// NewRootCommand 根命令，不带子命令时启动服务
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "twogether",
		Short: "Twogether couples API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// 加载 config 目录下的配置信息
			btsConfig.Initialize()
			config.InitConfig(opts.Env)
			bootstrap.SetupLogger()
		},
		SilenceUsage: true,
	}

	// 加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件
	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "", "load .env.<name> instead of .env")

	serve := NewServeCommand()
	cmd.RunE = serve.RunE

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewHolidayCommand())
	cmd.AddCommand(NewBalanceGameCommand())

	return cmd
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
