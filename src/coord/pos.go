package coord

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockPos 世界中的方块坐标
type BlockPos struct {
	X, Y, Z int32
}

// Chunk 返回方块所在的区块
func (p BlockPos) Chunk() ChunkPos {
	return ChunkPos{X: BlockToChunk(p.X), Z: BlockToChunk(p.Z)}
}

// SubChunk 返回方块所在的子区块
func (p BlockPos) SubChunk() SubChunkPos {
	return SubChunkPos{X: BlockToChunk(p.X), Y: int8(BlockToChunk(p.Y)), Z: BlockToChunk(p.Z)}
}

// Region 返回方块所在的区域
func (p BlockPos) Region() RegionPos {
	return RegionPos{X: BlockToRegion(p.X), Z: BlockToRegion(p.Z)}
}

// Local 返回方块在子区块内的坐标，各分量均在 [0,16)
func (p BlockPos) Local() (x, y, z int) {
	return int(p.X & 0xf), int(p.Y & 0xf), int(p.Z & 0xf)
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// ChunkPos 区块坐标
type ChunkPos struct {
	X, Z int32
}

// Region 返回区块所在的区域
func (c ChunkPos) Region() RegionPos {
	return RegionPos{X: ChunkToRegion(c.X), Z: ChunkToRegion(c.Z)}
}

// LocalIndex 区块在所属区域内的序号
func (c ChunkPos) LocalIndex() int {
	return LocalIndex(c.X, c.Z)
}

// Block 返回区块内最小的方块坐标，Y 为 y
func (c ChunkPos) Block(y int32) BlockPos {
	return BlockPos{X: ChunkToBlock(c.X), Y: y, Z: ChunkToBlock(c.Z)}
}

// SubChunk 返回区块中第 y 个子区块
func (c ChunkPos) SubChunk(y int8) SubChunkPos {
	return SubChunkPos{X: c.X, Y: y, Z: c.Z}
}

func (c ChunkPos) String() string {
	return fmt.Sprintf("[%d, %d]", c.X, c.Z)
}

// SubChunkPos 子区块坐标
type SubChunkPos struct {
	X int32
	Y int8
	Z int32
}

// Chunk 返回子区块所属的区块
func (s SubChunkPos) Chunk() ChunkPos {
	return ChunkPos{X: s.X, Z: s.Z}
}

// Block 返回子区块内最小的方块坐标
func (s SubChunkPos) Block() BlockPos {
	return BlockPos{X: ChunkToBlock(s.X), Y: int32(s.Y) * ChunkSize, Z: ChunkToBlock(s.Z)}
}

// RegionPos 区域坐标，一个区域包含 32x32 个区块
type RegionPos struct {
	X, Z int32
}

// Chunk 返回区域内序号为 localIndex 的区块
func (r RegionPos) Chunk(localIndex int) ChunkPos {
	return ChunkPos{
		X: RegionToChunk(r.X) + int32(localIndex%RegionChunks),
		Z: RegionToChunk(r.Z) + int32(localIndex/RegionChunks),
	}
}

// Chunks 按序号顺序返回区域内的全部区块
func (r RegionPos) Chunks() []ChunkPos {
	chunks := make([]ChunkPos, 0, RegionChunks*RegionChunks)
	for i := 0; i < RegionChunks*RegionChunks; i++ {
		chunks = append(chunks, r.Chunk(i))
	}
	return chunks
}

func (r RegionPos) String() string {
	return fmt.Sprintf("r.%d.%d", r.X, r.Z)
}

// ParseRegion 解析 r.X.Z 形式的区域名称
func ParseRegion(s string) (RegionPos, error) {
	var r RegionPos
	parts := strings.Split(s, ".")
	if len(parts) != 3 || parts[0] != "r" {
		return r, fmt.Errorf("invalid region %q, want r.X.Z", s)
	}
	x, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return r, fmt.Errorf("invalid region %q: %w", s, err)
	}
	z, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return r, fmt.Errorf("invalid region %q: %w", s, err)
	}
	return RegionPos{X: int32(x), Z: int32(z)}, nil
}
