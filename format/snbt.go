package format

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"bedrockdb/src/nbt"
	"bedrockdb/src/world"
)

var bareName = regexp.MustCompile(`^[A-Za-z0-9_.+-]+$`)

// SNBTDumper 字符串化NBT输出器
type SNBTDumper struct{}

// NewSNBTDumper 创建SNBT输出器
func NewSNBTDumper() *SNBTDumper {
	return &SNBTDumper{}
}

func (s *SNBTDumper) GetFormatName() string {
	return "snbt"
}

func (s *SNBTDumper) GetExtension() string {
	return ".snbt"
}

// DumpTag 输出 name: value
func (s *SNBTDumper) DumpTag(w io.Writer, nt nbt.NamedTag) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", quoteName(nt.Name), SNBT(nt.Tag))
	return err
}

// DumpChunk 每行一个子区块层或NBT记录
func (s *SNBTDumper) DumpChunk(w io.Writer, c *world.Chunk) error {
	v := newChunkView(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, "# chunk %d %d %s version=%d finalized=%d\n", v.X, v.Z, v.Dimension, v.Version, v.Finalized)
	for _, sc := range v.SubChunks {
		for i, l := range sc.Layers {
			fmt.Fprintf(&sb, "subchunk %d layer %d bpb=%d:", sc.Y, i, l.BitsPerBlock)
			for _, e := range l.Palette {
				fmt.Fprintf(&sb, " %s%s x%d", e.Name, statesSNBT(e), e.Count)
			}
			sb.WriteByte('\n')
		}
	}
	for _, b := range v.Biomes {
		fmt.Fprintf(&sb, "biomes %d: %v\n", b.Y, b.Palette)
	}
	if v.Biomes2D != nil {
		fmt.Fprintf(&sb, "biomes_2d: %v\n", v.Biomes2D)
	}
	for _, c := range v.BlockEntities {
		fmt.Fprintf(&sb, "block_entity %s\n", SNBT(c))
	}
	for _, c := range v.Entities {
		fmt.Fprintf(&sb, "entity %s\n", SNBT(c))
	}
	for _, e := range v.Errors {
		fmt.Fprintf(&sb, "# error %s\n", e)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func statesSNBT(e paletteEntry) string {
	if e.States == nil {
		return ""
	}
	return SNBT(e.States)
}

// SNBT 返回标签的字符串化表示，如 {name:"minecraft:stone",val:1s}
func SNBT(t nbt.Tag) string {
	var sb strings.Builder
	writeSNBT(&sb, t)
	return sb.String()
}

func quoteName(name string) string {
	if bareName.MatchString(name) {
		return name
	}
	return quoteString(name)
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func formatFloat(f float64, bits int, suffix byte) string {
	switch {
	case math.IsNaN(f):
		return "NaN" + string(suffix)
	case math.IsInf(f, 1):
		return "Infinity" + string(suffix)
	case math.IsInf(f, -1):
		return "-Infinity" + string(suffix)
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + string(suffix)
}

func writeSNBT(sb *strings.Builder, t nbt.Tag) {
	switch v := t.(type) {
	case nbt.End:
		sb.WriteString("end")
	case nbt.Byte:
		fmt.Fprintf(sb, "%db", int8(v))
	case nbt.Short:
		fmt.Fprintf(sb, "%ds", int16(v))
	case nbt.Int:
		fmt.Fprintf(sb, "%d", int32(v))
	case nbt.Long:
		fmt.Fprintf(sb, "%dL", int64(v))
	case nbt.Float:
		sb.WriteString(formatFloat(float64(v), 32, 'f'))
	case nbt.Double:
		sb.WriteString(formatFloat(float64(v), 64, 'd'))
	case nbt.String:
		sb.WriteString(quoteString(string(v)))
	case nbt.ByteArray:
		sb.WriteString("[B;")
		for i, b := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%db", int8(b))
		}
		sb.WriteByte(']')
	case nbt.IntArray:
		sb.WriteString("[I;")
		for i, n := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%d", n)
		}
		sb.WriteByte(']')
	case nbt.LongArray:
		sb.WriteString("[L;")
		for i, n := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%dL", n)
		}
		sb.WriteByte(']')
	case *nbt.List:
		sb.WriteByte('[')
		v.Each(func(i int, item nbt.Tag) bool {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSNBT(sb, item)
			return true
		})
		sb.WriteByte(']')
	case *nbt.Compound:
		sb.WriteByte('{')
		first := true
		v.Each(func(name string, item nbt.Tag) bool {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(quoteName(name))
			sb.WriteByte(':')
			writeSNBT(sb, item)
			return true
		})
		sb.WriteByte('}')
	}
}
