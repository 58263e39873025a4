package subchunk

import (
	"encoding/binary"
	"fmt"

	"bedrockdb/src/coord"
	"bedrockdb/src/errs"
)

// HeightMapSize Data3D 记录开头的高度图字节数（256 个 i16）
const HeightMapSize = 512

// Data2DSize Data2D 记录的长度：高度图与 16x16 个单字节生物群系ID
const Data2DSize = HeightMapSize + 256

// copyPrevious 表示沿用上一个子区块的生物群系；出现在最前面时表示该段未生成
const copyPrevious = 0xff

// BiomeSection 一个子区块的生物群系：索引与数字生物群系ID调色板
type BiomeSection struct {
	Indices [Volume]uint16
	Palette []int32
}

// UniformBiome 创建整个子区块只有一种生物群系的分段
func UniformBiome(id int32) *BiomeSection {
	return &BiomeSection{Palette: []int32{id}}
}

// At 返回坐标处的生物群系ID
func (b *BiomeSection) At(x, y, z int) int32 {
	return b.Palette[b.Indices[(x<<4|z)<<4|y]]
}

// Equal 比较索引与调色板
func (b *BiomeSection) Equal(o *BiomeSection) bool {
	if b.Indices != o.Indices || len(b.Palette) != len(o.Palette) {
		return false
	}
	for i := range b.Palette {
		if b.Palette[i] != o.Palette[i] {
			return false
		}
	}
	return true
}

// Biomes Data3D 记录：高度图与自最低子区块起的各段生物群系。
// 相邻分段指向同一个 *BiomeSection 时编码为“沿用上一段”；
// 开头未生成的分段为 nil。
type Biomes struct {
	Heights  [256]int16
	Sections []*BiomeSection
}

// Height 返回列 (x, z) 的高度
func (b *Biomes) Height(x, z int) int16 {
	return b.Heights[z<<4|x]
}

// Section 返回第 i 段，越界或未生成时返回 false
func (b *Biomes) Section(i int) (*BiomeSection, bool) {
	if i < 0 || i >= len(b.Sections) || b.Sections[i] == nil {
		return nil, false
	}
	return b.Sections[i], true
}

func decodeHeights(data []byte, heights *[256]int16) {
	for i := range heights {
		heights[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
}

func appendHeights(buf []byte, heights *[256]int16) []byte {
	for _, h := range heights {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(h))
	}
	return buf
}

// DecodeBiomes 解码维度 dim 中的 Data3D 记录。
// 最多读取维度子区块层数个分段，其后的字节被忽略。
func DecodeBiomes(data []byte, dim coord.Dimension) (*Biomes, error) {
	limit := dim.SubChunkCount()
	if limit == 0 {
		return nil, errs.Unsupported(0, "biome dimension", dim)
	}
	r := &reader{data: data}
	if err := r.need(HeightMapSize, "height map"); err != nil {
		return nil, err
	}
	b := &Biomes{}
	decodeHeights(data, &b.Heights)
	r.off = HeightMapSize

	for r.off < len(data) && len(b.Sections) < limit {
		start := r.off
		h, err := r.u8("biome header")
		if err != nil {
			return nil, err
		}
		if h == copyPrevious {
			var prev *BiomeSection
			if len(b.Sections) > 0 {
				prev = b.Sections[len(b.Sections)-1]
			}
			b.Sections = append(b.Sections, prev)
			continue
		}
		r.off = start
		s, err := r.biomeSection()
		if err != nil {
			return nil, fmt.Errorf("biome section %d: %w", len(b.Sections), err)
		}
		b.Sections = append(b.Sections, s)
	}
	return b, nil
}

func (r *reader) biomeSection() (*BiomeSection, error) {
	bpb, err := r.header()
	if err != nil {
		return nil, err
	}
	s := &BiomeSection{}
	if bpb == 0 {
		id, err := r.i32("biome id")
		if err != nil {
			return nil, err
		}
		s.Palette = []int32{id}
		return s, nil
	}
	if err := r.indices(bpb, &s.Indices); err != nil {
		return nil, err
	}
	n, err := r.paletteCount(bpb, 4)
	if err != nil {
		return nil, err
	}
	s.Palette = make([]int32, n)
	for i := range s.Palette {
		s.Palette[i] = int32(binary.LittleEndian.Uint32(r.data[r.off:]))
		r.off += 4
	}
	for i, idx := range s.Indices {
		if int(idx) >= n {
			return nil, errs.Malformed(r.off, fmt.Sprintf("biome index at %d", i), fmt.Sprintf("< %d", n), idx)
		}
	}
	return s, nil
}

// EncodeBiomes 编码 Data3D 记录。nil 分段只能出现在开头。
func EncodeBiomes(b *Biomes) []byte {
	buf := make([]byte, 0, HeightMapSize+len(b.Sections)*4)
	buf = appendHeights(buf, &b.Heights)
	for i, s := range b.Sections {
		if s == nil && i > 0 && b.Sections[i-1] != nil {
			panic(fmt.Sprintf("subchunk: biome section %d is nil after a generated section", i))
		}
		if s == nil || (i > 0 && s == b.Sections[i-1]) {
			buf = append(buf, copyPrevious)
			continue
		}
		if len(s.Palette) == 0 || len(s.Palette) > Volume {
			panic(fmt.Sprintf("subchunk: biome palette size %d out of range", len(s.Palette)))
		}
		bpb := BitsFor(len(s.Palette))
		buf = append(buf, byte(bpb<<1))
		if bpb == 0 {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Palette[0]))
			continue
		}
		buf = appendIndices(buf, bpb, &s.Indices)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.Palette)))
		for _, id := range s.Palette {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
		}
	}
	return buf
}

// Biomes2D 旧版 Data2D 记录：高度图与每列一个生物群系ID
type Biomes2D struct {
	Heights [256]int16
	IDs     [256]byte
}

// At 返回列 (x, z) 的生物群系ID
func (b *Biomes2D) At(x, z int) byte {
	return b.IDs[z<<4|x]
}

// Height 返回列 (x, z) 的高度
func (b *Biomes2D) Height(x, z int) int16 {
	return b.Heights[z<<4|x]
}

// DecodeBiomes2D 解码 Data2D 记录，多余的字节被忽略
func DecodeBiomes2D(data []byte) (*Biomes2D, error) {
	r := &reader{data: data}
	if err := r.need(Data2DSize, "biome column"); err != nil {
		return nil, err
	}
	b := &Biomes2D{}
	decodeHeights(data, &b.Heights)
	copy(b.IDs[:], data[HeightMapSize:Data2DSize])
	return b, nil
}

// EncodeBiomes2D 编码 Data2D 记录
func EncodeBiomes2D(b *Biomes2D) []byte {
	buf := make([]byte, 0, Data2DSize)
	buf = appendHeights(buf, &b.Heights)
	return append(buf, b.IDs[:]...)
}
