package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bedrockdb/format"
	"bedrockdb/src/block"
	"bedrockdb/src/coord"
	"bedrockdb/src/key"
	"bedrockdb/src/nbt"
	"bedrockdb/src/world"
	"bedrockdb/utils"
)

// parseInt32s 将命令参数解析为 int32
func parseInt32s(args []string) ([]int32, error) {
	out := make([]int32, len(args))
	for i, s := range args {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("无效的坐标 %q", s)
		}
		out[i] = int32(v)
	}
	return out, nil
}

// parseKind 按名称解析键类别
func parseKind(s string) (key.Kind, error) {
	for k := key.KindUnhandled; k <= key.KindRealmsStories; k++ {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("未知的键类别 %q", s)
}

func (a *app) dumper(name string) (format.Dumper, error) {
	if name == "" {
		name = a.cfg.Export.Format
	}
	return format.NewDumperManager().GetDumper(name)
}

func newLevelDatCmd(a *app) *cobra.Command {
	var formatName string
	var full bool
	cmd := &cobra.Command{
		Use:   "leveldat",
		Short: "显示 level.dat 信息",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()
			ld := w.LevelDat
			if full {
				d, err := a.dumper(formatName)
				if err != nil {
					return a.fail(err)
				}
				return d.DumpTag(cmd.OutOrStdout(), nbt.NamedTag{Tag: ld.Root})
			}

			out := cmd.OutOrStdout()
			utils.PrintSectionTitle(out, ld.LevelName(), a.color())
			x, y, z := ld.Spawn()
			fmt.Fprintf(out, "存储版本: %d\n", ld.StorageVersion)
			fmt.Fprintf(out, "游戏模式: %s\n", ld.GameType())
			fmt.Fprintf(out, "难度: %s\n", ld.Difficulty())
			fmt.Fprintf(out, "出生点: %d, %d, %d\n", x, y, z)
			fmt.Fprintf(out, "游戏版本: %s\n", ld.LastOpenedWithVersion())
			if t := ld.LastPlayed(); !t.IsZero() {
				fmt.Fprintf(out, "上次游玩: %s\n", t.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "输出完整的NBT")
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "输出格式 (json, snbt)")
	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	var kindName, prefix string
	var limit, values int
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "列出数据库中的键",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *key.Kind
			if kindName != "" {
				k, err := parseKind(kindName)
				if err != nil {
					return a.fail(err)
				}
				filter = &k
			}
			rawPrefix, err := hex.DecodeString(prefix)
			if err != nil {
				return a.fail(fmt.Errorf("--prefix 必须是十六进制: %w", err))
			}
			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()

			out := cmd.OutOrStdout()
			n := 0
			err = w.Store().Iterate(rawPrefix, func(raw, value []byte) bool {
				k := key.Parse(append([]byte(nil), raw...))
				if filter != nil && k.Kind != *filter {
					return true
				}
				fmt.Fprintf(out, "%-14s %-48s %s", k.Kind, k, utils.FormatBytes(int64(len(value))))
				if values > 0 {
					fmt.Fprintf(out, "  %s", utils.HexPreview(value, values))
				}
				fmt.Fprintln(out)
				n++
				return limit <= 0 || n < limit
			})
			if err != nil {
				return a.fail(err)
			}
			fmt.Fprintln(out, utils.ColoredPrintf(utils.Green, "共 %d 个键", a.color(), n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "只显示指定类别 (chunk, string, player, map, village, structure, actor, digest, realms_stories, unhandled)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "键前缀（十六进制）")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "最多显示的数量，0 为不限")
	cmd.Flags().IntVar(&values, "values", 0, "以十六进制显示值的前 N 个字节")
	return cmd
}

func newChunkCmd(a *app) *cobra.Command {
	var formatName string
	var verify bool
	cmd := &cobra.Command{
		Use:   "chunk <x> <z>",
		Short: "解码并输出一个区块",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xz, err := parseInt32s(args)
			if err != nil {
				return a.fail(err)
			}
			dim, err := a.dim()
			if err != nil {
				return a.fail(err)
			}
			d, err := a.dumper(formatName)
			if err != nil {
				return a.fail(err)
			}
			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()

			pos := coord.ChunkPos{X: xz[0], Z: xz[1]}
			c, err := w.Chunk(pos, dim)
			if errors.Is(err, world.ErrNotFound) {
				return a.fail(fmt.Errorf("%s: %s %s", a.msg.Get("chunk_not_found"), dim, pos))
			}
			if err != nil {
				return a.fail(err)
			}
			if err := d.DumpChunk(cmd.OutOrStdout(), c); err != nil {
				return a.fail(err)
			}
			if verify {
				if ok, problems := format.VerifyChunk(c); !ok {
					for _, p := range problems {
						fmt.Fprintln(cmd.ErrOrStderr(), utils.ColoredPrintf(utils.Yellow, "⚠️  %s", a.color(), p))
					}
				}
			} else {
				for _, err := range c.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), utils.ColoredPrintf(utils.Yellow, "⚠️  %s: %v", a.color(), a.msg.Get("record_failed"), err))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "输出格式 (json, snbt)")
	cmd.Flags().BoolVar(&verify, "verify", true, "检查区块内容")
	return cmd
}

func newBlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block <x> <y> <z>",
		Short: "查询世界坐标处的方块",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			xyz, err := parseInt32s(args)
			if err != nil {
				return a.fail(err)
			}
			dim, err := a.dim()
			if err != nil {
				return a.fail(err)
			}
			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()

			pos := coord.BlockPos{X: xyz[0], Y: xyz[1], Z: xyz[2]}
			b, typ, err := w.Block(pos, dim)
			if err != nil {
				return a.fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (子区块 %v, 区域 %s)\n", dim, pos, pos.SubChunk(), pos.Region())
			fmt.Fprintf(out, "方块: %s\n", b)
			fmt.Fprintf(out, "类型: %s", typ)
			if typ.Transparent() {
				fmt.Fprint(out, " [透明]")
			}
			if typ.Water() {
				fmt.Fprint(out, " [含水]")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newDimensionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions",
		Short: "列出维度及其高度范围",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range coord.Dimensions {
				lo, hi := d.BlockYRange()
				line := fmt.Sprintf("%-10s id=%d y=[%d, %d] %s", d, int32(d), lo, hi, d.Color().Hex())
				fmt.Fprintln(out, utils.ColoredPrint(utils.ColorToANSI(d.Color()), line, a.color()))
			}
			return nil
		},
	}
}

func newBlocksCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "列出内置注册表中的方块类型",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := block.Default()
			out := cmd.OutOrStdout()
			n := 0
			for _, name := range r.Names() {
				typ, _ := r.Lookup(name)
				if filter != "" && !strings.Contains(typ.ShortName(), filter) {
					continue
				}
				var flags []string
				if typ.Transparent() {
					flags = append(flags, "透明")
				}
				if typ.Water() {
					flags = append(flags, "含水")
				}
				fmt.Fprintf(out, "%-40s %s\n", typ.ShortName(), strings.Join(flags, ","))
				n++
			}
			fmt.Fprintln(out, utils.ColoredPrintf(utils.Green, "共 %d / %d 种方块", a.color(), n, r.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "只显示名称包含该字符串的方块")
	return cmd
}

var gzipMagic = []byte{0x1f, 0x8b}

// readNBTFile 读取小端序NBT文件，gzip 压缩的文件自动解压；未压缩的文件可以包含多个根标签
func readNBTFile(path string) ([]nbt.NamedTag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, gzipMagic) {
		nt, err := nbt.ReadGzip(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return []nbt.NamedTag{nt}, nil
	}
	return nbt.UnmarshalAll(data)
}

func newNBTCmd(a *app) *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "nbt <file>",
		Short: "输出小端序NBT文件（如 .mcstructure）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dumper(formatName)
			if err != nil {
				return a.fail(err)
			}
			tags, err := readNBTFile(args[0])
			if err != nil {
				return a.fail(fmt.Errorf("%s: %w", args[0], err))
			}
			for _, nt := range tags {
				if err := d.DumpTag(cmd.OutOrStdout(), nt); err != nil {
					return a.fail(err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "输出格式 (json, snbt)")
	return cmd
}
