package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bedrockdb/format"
	"bedrockdb/src/coord"
	"bedrockdb/src/world"
	"bedrockdb/utils"
)

// exportOptions 导出参数
type exportOptions struct {
	Dimension   coord.Dimension
	Dumper      format.Dumper
	Compression world.Compression
	OutDir      string
	// Region 不为 nil 时只导出该区域内的区块
	Region *coord.RegionPos
	// OnError 报告单个区块的错误。记录损坏的区块仍会导出其余内容，无法读取或输出的区块被跳过。
	OnError func(pos coord.ChunkPos, err error)
}

func exportFileName(pos coord.ChunkPos, opts exportOptions) string {
	return fmt.Sprintf("%s_%d_%d%s%s", opts.Dimension, pos.X, pos.Z, opts.Dumper.GetExtension(), opts.Compression.Extension())
}

// exportChunks 将维度中的区块逐个写成文件，返回写入的文件数。
// 单个区块的错误交给 OnError 后继续；只有写文件失败时中止。
func exportChunks(w *world.World, opts exportOptions, progress format.ProgressCallback) (int, error) {
	chunks, err := w.Chunks(opts.Dimension)
	if err != nil {
		return 0, err
	}
	if opts.Region != nil {
		filtered := chunks[:0]
		for _, pos := range chunks {
			if pos.Region() == *opts.Region {
				filtered = append(filtered, pos)
			}
		}
		chunks = filtered
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return 0, err
	}
	report := func(pos coord.ChunkPos, err error) {
		if opts.OnError != nil {
			opts.OnError(pos, err)
		}
	}

	written := 0
	var buf bytes.Buffer
	for i, pos := range chunks {
		name := exportFileName(pos, opts)
		if progress != nil {
			progress(i+1, len(chunks), name)
		}
		c, err := w.Chunk(pos, opts.Dimension)
		if err != nil {
			report(pos, err)
			continue
		}
		if err := c.Err(); err != nil {
			report(pos, err)
		}
		buf.Reset()
		if err := opts.Dumper.DumpChunk(&buf, c); err != nil {
			report(pos, err)
			continue
		}
		data, err := world.Compress(opts.Compression, buf.Bytes())
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(filepath.Join(opts.OutDir, name), data, 0o644); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func newExportCmd(a *app) *cobra.Command {
	var formatName, compression, outDir, region string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "将维度中的区块导出为文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := a.dim()
			if err != nil {
				return a.fail(err)
			}
			d, err := a.dumper(formatName)
			if err != nil {
				return a.fail(err)
			}
			comp := a.cfg.Compression()
			if compression != "" {
				if comp, err = world.ParseCompression(compression); err != nil {
					return a.fail(err)
				}
			}
			if outDir == "" {
				outDir = a.cfg.General.OutputDirectory
			}
			opts := exportOptions{Dimension: dim, Dumper: d, Compression: comp, OutDir: outDir}
			if region != "" {
				r, err := coord.ParseRegion(region)
				if err != nil {
					return a.fail(err)
				}
				opts.Region = &r
			}

			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()

			fmt.Println(utils.ColoredPrintf(utils.Blue, "🔄 %s %s -> %s (%s, %s)", a.color(), a.msg.Get("export_start"), dim, outDir, d.GetFormatName(), comp))
			var bar interface{ Set(int) error }
			failed := 0
			opts.OnError = func(pos coord.ChunkPos, err error) {
				failed++
				fmt.Fprintln(cmd.ErrOrStderr(), utils.ColoredPrintf(utils.Yellow, "⚠️  %s %s: %v", a.color(), a.msg.Get("chunk_export_failed"), pos, err))
			}
			n, err := exportChunks(w, opts, func(current, total int, name string) {
				if bar == nil {
					bar = utils.NewProgressBar(int64(total), "💾 区块", a.cfg.UI.ProgressBar)
				}
				bar.Set(current)
			})
			if err != nil {
				return a.fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.ColoredPrintf(utils.Green, "✅ %s: %d", a.color(), a.msg.Get("export_done"), n))
			if failed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), utils.ColoredPrintf(utils.Yellow, "⚠️  %s: %d", a.color(), a.msg.Get("export_chunk_errors"), failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "输出格式 (json, snbt, mcstructure)")
	cmd.Flags().StringVar(&compression, "compression", "", "压缩算法 (none, flate, zlib, gzip, zstd, snappy, lz4)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "输出目录")
	cmd.Flags().StringVarP(&region, "region", "r", "", "只导出指定区域，如 r.0.-1")
	return cmd
}
