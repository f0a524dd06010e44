// Package cmd 提供 calc CLI 的命令实现
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yqhp/calc-engine/internal/calculator"
	"yqhp/calc-engine/internal/config"
	"yqhp/calc-engine/pkg/logger"
)

const (
	// Version 是当前版本号
	Version = "0.1.0"
	// Banner 是启动时显示的 ASCII 艺术
	Banner = `
   ___      _         Calc Engine %s
  / __|__ _| |__      (x + y) * z
 | (__/ _' | / _|     x y + z *
  \___\__,_|_\__|
`
)

var (
	// 全局配置
	cfgFile string
	debug   bool
	quiet   bool

	// appConfig 在 PersistentPreRunE 中加载
	appConfig *config.Config
)

// rootCmd 是根命令
var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "整数四则运算表达式求值器",
	Long: `calc 将中缀表达式词法分析为 token，用调度场算法转换为后缀表达式并求值。
支持 + - * / 与括号，所有运算均为整数运算。`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// 全局 flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "静默模式")

	// 禁用默认的 completion 命令
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// 自定义版本模板
	rootCmd.SetVersionTemplate(fmt.Sprintf(Banner, Version) + "\n")
}

// initApp 加载配置并初始化日志
func initApp(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader = loader.WithConfigPath(cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	if debug {
		cfg.Logging.Level = "debug"
	} else if quiet {
		cfg.Logging.Level = "error"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	logger.ReplaceGlobal(logger.New(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}))

	appConfig = cfg
	return nil
}

// newService 按当前配置创建计算服务
func newService() *calculator.Service {
	return calculator.New(
		calculator.WithMaxLength(appConfig.Calculator.MaxExpressionLength),
		calculator.WithLogger(logger.Logger()),
	)
}

// GetRootCmd 返回根命令（用于测试）
func GetRootCmd() *cobra.Command {
	return rootCmd
}
