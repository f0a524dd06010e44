package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"yqhp/calc-engine/api/rest"
	"yqhp/calc-engine/api/rest/client"
	"yqhp/calc-engine/internal/expression"
)

// DefaultExpression 是未提供参数时求值的表达式
const DefaultExpression = "(42 * 42) + 3 * 2 * 20 + 3"

var (
	// eval 命令的 flags
	evalTokens  bool
	evalPostfix bool
	evalJSON    bool
	evalRemote  string
)

// evalCmd 是 eval 子命令
var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "对表达式求值",
	Long: `对中缀表达式求值并输出 "<表达式> = <结果>"。

多个参数以空格拼接为一个表达式；未提供参数时使用内置示例表达式。`,
	Example: `  # 求值内置示例表达式
  calc eval

  # 求值指定表达式并打印中间结果
  calc eval --tokens --postfix "2 + 3 * 4"

  # 通过远程 REST API 求值
  calc eval --remote http://localhost:8080 "8 - 3 - 2"`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVar(&evalTokens, "tokens", false, "打印 token 序列")
	evalCmd.Flags().BoolVar(&evalPostfix, "postfix", false, "打印后缀表达式")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "以 JSON 格式输出结果")
	evalCmd.Flags().StringVar(&evalRemote, "remote", "", "远程 REST API 地址")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr := DefaultExpression
	if len(args) > 0 {
		expr = strings.Join(args, " ")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		resp *rest.EvaluateResponse
		err  error
	)
	if evalRemote != "" {
		resp, err = evalRemoteExpression(ctx, expr)
	} else {
		resp, err = evalLocalExpression(ctx, expr)
	}
	if err != nil {
		return fmt.Errorf("求值失败: %w", err)
	}

	out := cmd.OutOrStdout()
	if evalJSON {
		data, err := sonic.Marshal(resp)
		if err != nil {
			return fmt.Errorf("序列化结果失败: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if evalTokens {
		fmt.Fprintf(out, "tokens:  %s\n", strings.Join(resp.Tokens, " "))
	}
	if evalPostfix {
		fmt.Fprintf(out, "postfix: %s\n", strings.Join(resp.Postfix, " "))
	}
	fmt.Fprintf(out, "%s = %d\n", resp.Expression, resp.Result)
	return nil
}

func evalLocalExpression(ctx context.Context, expr string) (*rest.EvaluateResponse, error) {
	res, err := newService().Evaluate(ctx, expr)
	if err != nil {
		return nil, err
	}
	return &rest.EvaluateResponse{
		Expression: res.Expression,
		Tokens:     expression.Strings(res.Tokens),
		Postfix:    expression.Strings(res.Postfix),
		Result:     res.Value,
	}, nil
}

func evalRemoteExpression(ctx context.Context, expr string) (*rest.EvaluateResponse, error) {
	c := client.New(&client.Config{
		BaseURL:        evalRemote,
		RequestTimeout: appConfig.Server.WriteTimeout,
	})
	return c.Evaluate(ctx, expr)
}
