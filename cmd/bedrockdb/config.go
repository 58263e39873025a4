package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bedrockdb/config"
	"bedrockdb/utils"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "查看或初始化配置文件",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "显示当前配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return a.fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "写入默认配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveConfig(a.configPath); err != nil {
				return a.fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.ColoredPrintf(utils.Green, "✅ %s: %s", a.color(), a.msg.Get("config_saved"), a.configPath))
			return nil
		},
	})
	return cmd
}
