package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"yqhp/calc-engine/api/mcp"
)

// mcpCmd 是 mcp 子命令
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "通过 stdio 提供 MCP 工具",
	Long: `以 MCP (Model Context Protocol) 服务端运行，经由 stdin/stdout 提供
evaluate 与 postfix 两个工具。日志写入 stderr。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mcp.NewServer(newService(), Version).ServeStdio(); err != nil {
			return fmt.Errorf("MCP 服务运行失败: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
