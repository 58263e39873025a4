package coord

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Dimension 维度，存储键中以 i32 表示
type Dimension int32

const (
	Overworld Dimension = 0
	Nether    Dimension = 1
	End       Dimension = 2
)

// Dimensions 所有已知维度
var Dimensions = []Dimension{Overworld, Nether, End}

type dimensionInfo struct {
	name           string
	minSub, maxSub int8
	color          colorful.Color
}

var dimensionTable = map[Dimension]dimensionInfo{
	Overworld: {"overworld", -4, 19, colorful.Color{R: 52 / 255.0, G: 199 / 255.0, B: 90 / 255.0}},
	Nether:    {"nether", 0, 7, colorful.Color{R: 189 / 255.0, G: 48 / 255.0, B: 48 / 255.0}},
	End:       {"end", 0, 15, colorful.Color{R: 235 / 255.0, G: 237 / 255.0, B: 150 / 255.0}},
}

// Valid 判断是否为已知维度
func (d Dimension) Valid() bool {
	_, ok := dimensionTable[d]
	return ok
}

func (d Dimension) String() string {
	if info, ok := dimensionTable[d]; ok {
		return info.name
	}
	return fmt.Sprintf("dimension(%d)", int32(d))
}

// ParseDimension 按名称或数字解析维度
func ParseDimension(s string) (Dimension, error) {
	for d, info := range dimensionTable {
		if info.name == s || fmt.Sprint(int32(d)) == s {
			return d, nil
		}
	}
	switch s {
	case "the_nether", "theNether":
		return Nether, nil
	case "the_end", "theEnd":
		return End, nil
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// SubChunkRange 返回子区块Y的闭区间
func (d Dimension) SubChunkRange() (lo, hi int8) {
	info := dimensionTable[d]
	return info.minSub, info.maxSub
}

// SubChunkCount 维度的子区块层数，未知维度为 0
func (d Dimension) SubChunkCount() int {
	if !d.Valid() {
		return 0
	}
	lo, hi := d.SubChunkRange()
	return int(hi) - int(lo) + 1
}

// BlockYRange 返回方块Y的闭区间
func (d Dimension) BlockYRange() (lo, hi int32) {
	minSub, maxSub := d.SubChunkRange()
	return int32(minSub) * ChunkSize, int32(maxSub)*ChunkSize + ChunkSize - 1
}

// ContainsSubChunk 判断子区块Y是否在维度高度范围内
func (d Dimension) ContainsSubChunk(y int8) bool {
	lo, hi := d.SubChunkRange()
	return d.Valid() && y >= lo && y <= hi
}

// Color 维度的标识颜色，未知维度返回灰色
func (d Dimension) Color() colorful.Color {
	if info, ok := dimensionTable[d]; ok {
		return info.color
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
