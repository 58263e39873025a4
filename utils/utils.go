package utils

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/schollz/progressbar/v3"
)

// ANSI颜色代码
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Bold    = "\033[1m"
)

// RGBToANSIColor 将RGB颜色转换为ANSI前景色代码
func RGBToANSIColor(r, g, b uint8) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// ColorToANSI 将 colorful.Color 转换为ANSI前景色代码
func ColorToANSI(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return RGBToANSIColor(r, g, b)
}

// ColoredPrint 使用指定颜色包裹文本
func ColoredPrint(colorCode, text string, useColor bool) string {
	if useColor {
		return colorCode + text + Reset
	}
	return text
}

// ColoredPrintf 使用颜色格式化文本
func ColoredPrintf(colorCode, format string, useColor bool, a ...interface{}) string {
	return ColoredPrint(colorCode, fmt.Sprintf(format, a...), useColor)
}

// GradientText 在 Lab 空间中从 start 渐变到 end 为每个字符着色
func GradientText(text string, start, end colorful.Color, useColor bool) string {
	if !useColor {
		return text
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		sb.WriteString(ColorToANSI(start.BlendLab(end, t)))
		sb.WriteRune(r)
	}
	sb.WriteString(Reset)
	return sb.String()
}

// PrintSectionTitle 打印带渐变色的章节标题
func PrintSectionTitle(w io.Writer, title string, useColor bool) {
	start := colorful.Color{R: 50 / 255.0, G: 205 / 255.0, B: 50 / 255.0}
	end := colorful.Color{R: 34 / 255.0, G: 139 / 255.0, B: 34 / 255.0}
	line := strings.Repeat("═", 40)
	fmt.Fprintln(w)
	fmt.Fprintln(w, GradientText(line, start, end, useColor))
	fmt.Fprintln(w, GradientText(title, start, end, useColor))
	fmt.Fprintln(w, GradientText(line, start, end, useColor))
}

// FormatBytes 以 B/KiB/MiB/GiB 显示字节数
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}

// HexPreview 以十六进制显示前 limit 个字节，超出部分以省略号表示
func HexPreview(b []byte, limit int) string {
	if len(b) <= limit {
		return fmt.Sprintf("% x", b)
	}
	return fmt.Sprintf("% x …(+%d)", b[:limit], len(b)-limit)
}

// NewProgressBar 创建进度条，enabled 为 false 时不输出任何内容
func NewProgressBar(total int64, description string, enabled bool) *progressbar.ProgressBar {
	if !enabled {
		return progressbar.DefaultSilent(total, description)
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rec"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionFullWidth(),
	)
}
