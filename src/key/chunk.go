package key

import (
	"encoding/binary"

	"bedrockdb/src/coord"
)

// ChunkKey 区块记录的键：X i32 | Z i32 | [维度 i32，主世界省略] | 类型 | [子区块Y i8，仅 SubChunkPrefix]
type ChunkKey struct {
	X, Z      int32
	Dimension coord.Dimension
	Tag       Tag
	SubChunkY int8
}

// Chunk 构造区块级记录的键
func Chunk(pos coord.ChunkPos, dim coord.Dimension, tag Tag) ChunkKey {
	return ChunkKey{X: pos.X, Z: pos.Z, Dimension: dim, Tag: tag}
}

// SubChunk 构造子区块方块存储记录的键
func SubChunk(pos coord.SubChunkPos, dim coord.Dimension) ChunkKey {
	return ChunkKey{X: pos.X, Z: pos.Z, Dimension: dim, Tag: SubChunkPrefix, SubChunkY: pos.Y}
}

// Pos 返回键所属的区块
func (k ChunkKey) Pos() coord.ChunkPos {
	return coord.ChunkPos{X: k.X, Z: k.Z}
}

// Len 编码后的字节数
func (k ChunkKey) Len() int {
	n := 9
	if k.Dimension != coord.Overworld {
		n += 4
	}
	if k.Tag == SubChunkPrefix {
		n++
	}
	return n
}

// Bytes 编码为存储键
func (k ChunkKey) Bytes() []byte {
	return k.AppendBytes(make([]byte, 0, k.Len()))
}

// AppendBytes 将编码后的键追加到 b
func (k ChunkKey) AppendBytes(b []byte) []byte {
	b = ChunkPrefix(b, k.Pos(), k.Dimension)
	b = append(b, byte(k.Tag))
	if k.Tag == SubChunkPrefix {
		b = append(b, byte(k.SubChunkY))
	}
	return b
}

// ChunkPrefix 将区块的坐标前缀（含维度）追加到 b，用于按区块遍历记录
func ChunkPrefix(b []byte, pos coord.ChunkPos, dim coord.Dimension) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(pos.X))
	b = binary.LittleEndian.AppendUint32(b, uint32(pos.Z))
	if dim != coord.Overworld {
		b = binary.LittleEndian.AppendUint32(b, uint32(dim))
	}
	return b
}

// DecodeChunkKey 解析区块记录的键。长度、维度或记录类型不符合布局时返回 false。
// 显式写出的主世界维度不是规范编码，同样返回 false。
func DecodeChunkKey(b []byte) (ChunkKey, bool) {
	var k ChunkKey
	switch len(b) {
	case 9, 10, 13, 14:
	default:
		return k, false
	}
	k.X = int32(binary.LittleEndian.Uint32(b[0:]))
	k.Z = int32(binary.LittleEndian.Uint32(b[4:]))
	i := 8
	if len(b) >= 13 {
		k.Dimension = coord.Dimension(int32(binary.LittleEndian.Uint32(b[8:])))
		if k.Dimension == coord.Overworld || !k.Dimension.Valid() {
			return ChunkKey{}, false
		}
		i = 12
	}
	k.Tag = Tag(b[i])
	if !k.Tag.Known() {
		return ChunkKey{}, false
	}
	hasY := len(b) == i+2
	if hasY != (k.Tag == SubChunkPrefix) {
		return ChunkKey{}, false
	}
	if hasY {
		k.SubChunkY = int8(b[i+1])
	}
	return k, true
}
