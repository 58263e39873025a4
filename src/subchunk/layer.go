package subchunk

import (
	"fmt"

	"bedrockdb/src/coord"
)

// Layer 一层方块存储：4096 个调色板索引与调色板
type Layer struct {
	Indices [Volume]uint16
	Palette []Block
}

// NewLayer 创建所有位置都指向 palette[0] 的存储层
func NewLayer(palette ...Block) *Layer {
	if len(palette) == 0 {
		panic("subchunk: layer needs at least one palette entry")
	}
	return &Layer{Palette: palette}
}

// BitsPerBlock 编码该层使用的每方块位数
func (l *Layer) BitsPerBlock() int {
	return BitsFor(len(l.Palette))
}

// At 返回子区块内坐标处的方块
func (l *Layer) At(x, y, z int) Block {
	i, ok := coord.LinearIndex(x, y, z)
	if !ok {
		panic(fmt.Sprintf("subchunk: position (%d, %d, %d) out of range", x, y, z))
	}
	return l.Palette[l.Indices[i]]
}

// Set 设置坐标处的方块，方块不在调色板中时追加
func (l *Layer) Set(x, y, z int, b Block) {
	i, ok := coord.LinearIndex(x, y, z)
	if !ok {
		panic(fmt.Sprintf("subchunk: position (%d, %d, %d) out of range", x, y, z))
	}
	l.Indices[i] = l.paletteIndex(b)
}

func (l *Layer) paletteIndex(b Block) uint16 {
	for i, p := range l.Palette {
		if p.Equal(b) {
			return uint16(i)
		}
	}
	l.Palette = append(l.Palette, b)
	return uint16(len(l.Palette) - 1)
}

// Uniform 判断整层是否只有一种方块
func (l *Layer) Uniform() bool {
	first := l.Indices[0]
	for _, idx := range l.Indices {
		if idx != first {
			return false
		}
	}
	return true
}

// Counts 统计每个调色板条目出现的次数
func (l *Layer) Counts() []int {
	counts := make([]int, len(l.Palette))
	for _, idx := range l.Indices {
		if int(idx) < len(counts) {
			counts[idx]++
		}
	}
	return counts
}

// Equal 比较索引与调色板
func (l *Layer) Equal(o *Layer) bool {
	if l.Indices != o.Indices || len(l.Palette) != len(o.Palette) {
		return false
	}
	for i := range l.Palette {
		if !l.Palette[i].Equal(o.Palette[i]) {
			return false
		}
	}
	return true
}

func (l *Layer) validate() {
	if len(l.Palette) == 0 || len(l.Palette) > Volume {
		panic(fmt.Sprintf("subchunk: palette size %d out of range", len(l.Palette)))
	}
	for i, idx := range l.Indices {
		if int(idx) >= len(l.Palette) {
			panic(fmt.Sprintf("subchunk: index %d at %d exceeds palette size %d", idx, i, len(l.Palette)))
		}
	}
}
