package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"

	"bedrockdb/src/key"
	"bedrockdb/src/world"
	"bedrockdb/utils"
)

func newScanCmd(a *app) *cobra.Command {
	var workers, showErrors int
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "解码全部记录并统计",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openWorld()
			if err != nil {
				return a.fail(err)
			}
			defer w.Close()
			if workers <= 0 {
				workers = a.cfg.Export.Workers
			}

			monitor := utils.NewResourceMonitor()
			monitor.Start()

			total, err := world.Count(w.Store(), nil)
			if err != nil {
				return a.fail(err)
			}
			fmt.Println(utils.ColoredPrintf(utils.Blue, "🔄 %s (%d)", a.color(), a.msg.Get("scan_start"), total))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			bar := utils.NewProgressBar(int64(total), "📊 记录", a.cfg.UI.ProgressBar)
			stats, failures, err := world.Scan(ctx, w.Store(), workers, func() { bar.Add(1) })
			bar.Finish()
			if err != nil {
				return a.fail(err)
			}

			out := cmd.OutOrStdout()
			printScanStats(out, stats, a.color())
			for i, f := range failures {
				if i >= showErrors {
					fmt.Fprintf(out, "... 另有 %d 条\n", len(failures)-i)
					break
				}
				fmt.Fprintln(out, utils.ColoredPrintf(utils.Red, "❌ %s: %v", a.color(), a.msg.Get("decode_failed"), f))
			}
			fmt.Fprintln(out, utils.ColoredPrintf(utils.Green, "✅ %s", a.color(), a.msg.Get("scan_done")))
			monitor.ShowMaxResourceUsage(out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "解码协程数，0 使用配置值")
	cmd.Flags().IntVar(&showErrors, "errors", 20, "最多显示的失败记录数")
	return cmd
}

func printScanStats(out io.Writer, stats *world.ScanStats, color bool) {
	utils.PrintSectionTitle(out, "扫描结果", color)
	fmt.Fprintf(out, "记录: %d  大小: %s  失败: %d\n", stats.Records, utils.FormatBytes(stats.Bytes), stats.Failed)

	kinds := make([]key.Kind, 0, len(stats.ByKind))
	for k := range stats.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-16s %d\n", k, stats.ByKind[k])
	}

	tags := make([]key.Tag, 0, len(stats.ByTag))
	for t := range stats.ByTag {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	for _, t := range tags {
		fmt.Fprintf(out, "    %-22s %d\n", t, stats.ByTag[t])
	}
}
