package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bedrockdb/config"
	"bedrockdb/message"
	"bedrockdb/src/coord"
	"bedrockdb/src/world"
	"bedrockdb/utils"
)

// app 命令共享的状态
type app struct {
	configPath string
	worldPath  string
	dimension  string
	noColor    bool

	cfg *config.Config
	msg *message.Messages
}

func (a *app) color() bool {
	return a.cfg.UI.ColoredOutput && !a.noColor
}

func (a *app) dim() (coord.Dimension, error) {
	if a.dimension == "" {
		return a.cfg.Dimension(), nil
	}
	return coord.ParseDimension(a.dimension)
}

// openWorld 打开 --world 或配置中的世界目录
func (a *app) openWorld() (*world.World, error) {
	path := a.worldPath
	if path == "" {
		path = a.cfg.World.Path
	}
	if path == "" {
		return nil, fmt.Errorf("%s: 请使用 --world 指定世界目录", a.msg.Get("world_not_found"))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", a.msg.Get("world_not_found"), err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", utils.ColoredPrintf(utils.Cyan, "📂 %s: %s", a.color(), a.msg.Get("open_world"), path))
	return world.Open(path, a.cfg.World.ReadOnly)
}

func (a *app) fail(err error) error {
	return fmt.Errorf("%s", utils.ColoredPrintf(utils.Red, "❌ %s: %v", a.color(), a.msg.Get("error"), err))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "bedrockdb",
		Short:         "bedrockdb - 基岩版世界数据库查看工具",
		Long:          `bedrockdb 读取基岩版世界的 level.dat 与 LevelDB 数据库，解码区块、子区块、生物群系与NBT记录`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			msg, err := message.LoadMessages("message", cfg.General.Language)
			if err != nil {
				return err
			}
			a.msg = msg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "配置文件路径")
	rootCmd.PersistentFlags().StringVarP(&a.worldPath, "world", "w", "", "世界目录（包含 level.dat 与 db）")
	rootCmd.PersistentFlags().StringVarP(&a.dimension, "dim", "d", "", "维度 (overworld, nether, end)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "禁用彩色输出")

	rootCmd.AddCommand(
		newLevelDatCmd(a),
		newKeysCmd(a),
		newChunkCmd(a),
		newBlockCmd(a),
		newDimensionsCmd(a),
		newBlocksCmd(a),
		newNBTCmd(a),
		newScanCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
