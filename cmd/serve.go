package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yqhp/calc-engine/api/rest"
	"yqhp/calc-engine/pkg/logger"
)

var serveAddress string

// serveCmd 是 serve 子命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 REST API 服务",
	Long:  `启动 HTTP 服务，通过 /api/v1/evaluate 等接口提供表达式求值。`,
	Example: `  # 使用默认配置启动
  calc serve

  # 指定监听地址
  calc serve --address :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddress, "address", ":8080", "HTTP 服务地址")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 应用命令行参数覆盖
	if cmd.Flags().Changed("address") {
		appConfig.Server.Address = serveAddress
	}

	server := rest.NewServer(newService(), &appConfig.Server)

	// 处理关闭信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, Banner, Version)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  HTTP 地址: %s\n", appConfig.Server.Address)
		fmt.Fprintln(out, "  按 Ctrl+C 停止。")
		fmt.Fprintln(out)
	}

	logger.Info("REST API 服务启动", zap.String("address", appConfig.Server.Address))
	if err := server.StartWithContext(ctx); err != nil {
		return fmt.Errorf("服务运行失败: %w", err)
	}
	logger.Info("REST API 服务已停止")
	return nil
}
