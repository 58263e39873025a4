package coord

const (
	// ChunkSize 区块边长（方块）
	ChunkSize = 16
	// RegionChunks 区域边长（区块）
	RegionChunks = 32
	// RegionSize 区域边长（方块）
	RegionSize = ChunkSize * RegionChunks
	// SubChunkVolume 子区块内的方块数
	SubChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// FloorDiv 向负无穷取整的整数除法，b 必须为正数
func FloorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// BlockToChunk 方块坐标 → 区块坐标
func BlockToChunk(b int32) int32 { return FloorDiv(b, ChunkSize) }

// ChunkToRegion 区块坐标 → 区域坐标
func ChunkToRegion(c int32) int32 { return FloorDiv(c, RegionChunks) }

// BlockToRegion 方块坐标 → 区域坐标
func BlockToRegion(b int32) int32 { return FloorDiv(b, RegionSize) }

// ChunkToBlock 区块的最小方块坐标
func ChunkToBlock(c int32) int32 { return c * ChunkSize }

// RegionToChunk 区域的最小区块坐标
func RegionToChunk(r int32) int32 { return r * RegionChunks }

// RegionToBlock 区域的最小方块坐标
func RegionToBlock(r int32) int32 { return r * RegionSize }

// LocalIndex 区块在所属区域内的序号：localX + localZ*32
func LocalIndex(cx, cz int32) int {
	return int(cx&(RegionChunks-1)) + int(cz&(RegionChunks-1))*RegionChunks
}

// LinearIndex 子区块内坐标的线性序号 ((x<<4)|z)<<4 | y，坐标越界时返回 false
func LinearIndex(x, y, z int) (int, bool) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize || z < 0 || z >= ChunkSize {
		return 0, false
	}
	return (x<<4|z)<<4 | y, true
}

// Decompose 是 LinearIndex 的逆运算
func Decompose(i int) (x, y, z int, ok bool) {
	if i < 0 || i >= SubChunkVolume {
		return 0, 0, 0, false
	}
	return i >> 8, i & 0xf, (i >> 4) & 0xf, true
}
