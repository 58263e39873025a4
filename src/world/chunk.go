package world

import (
	"errors"
	"fmt"
	"sort"

	"bedrockdb/src/coord"
	"bedrockdb/src/key"
	"bedrockdb/src/nbt"
	"bedrockdb/src/subchunk"
)

// Chunk 一个区块的全部已解析记录
type Chunk struct {
	Pos           coord.ChunkPos
	Dimension     coord.Dimension
	Version       byte
	Finalized     int32
	SubChunks     map[int8]*subchunk.SubChunk
	Biomes        *subchunk.Biomes
	Biomes2D      *subchunk.Biomes2D
	BlockEntities []nbt.NamedTag
	// Entities 旧版 Entity 记录中的实体，之后是 digp 索引指向的 actorprefix 实体
	Entities     []nbt.NamedTag
	ActorIDs     []key.ActorID
	PendingTicks []nbt.NamedTag
	// Other 其余记录类型的原始值
	Other map[key.Tag][]byte
	// Errors 无法解码的记录，其余记录照常载入
	Errors []error

	entityRecord bool
}

// Err 合并全部记录错误，没有错误时为 nil
func (c *Chunk) Err() error {
	return errors.Join(c.Errors...)
}

func recordName(k key.ChunkKey) string {
	if k.Tag == key.SubChunkPrefix {
		return fmt.Sprintf("%s y=%d", k.Tag, k.SubChunkY)
	}
	return k.Tag.String()
}

// LoadChunk 读取区块的所有记录。区块没有任何记录时返回 ErrNotFound。
// 单条记录解码失败不会中断载入，错误记在 Chunk.Errors 中；只有存储本身出错时返回错误。
func LoadChunk(s Store, pos coord.ChunkPos, dim coord.Dimension) (*Chunk, error) {
	c := &Chunk{
		Pos:       pos,
		Dimension: dim,
		SubChunks: make(map[int8]*subchunk.SubChunk),
		Other:     make(map[key.Tag][]byte),
	}
	found := false
	err := s.Iterate(key.ChunkPrefix(nil, pos, dim), func(raw, value []byte) bool {
		k, ok := key.DecodeChunkKey(raw)
		// 主世界的前缀同样匹配其他维度中同坐标的键
		if !ok || k.Dimension != dim || k.Pos() != pos {
			return true
		}
		found = true
		rec, err := DecodeRecord(k, append([]byte(nil), value...))
		if err != nil {
			c.Errors = append(c.Errors, fmt.Errorf("%s %s: %w", pos, recordName(k), err))
			return true
		}
		c.apply(rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	hasDigest, err := c.loadActors(s)
	if err != nil {
		return nil, err
	}
	if !found && !hasDigest {
		return nil, ErrNotFound
	}
	return c, nil
}

// loadActors 按 digp 索引读取 actorprefix 实体
func (c *Chunk) loadActors(s Store) (bool, error) {
	digest, err := s.Get(key.DigestKey(c.Pos, c.Dimension))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ids, err := key.ParseDigest(digest)
	if err != nil {
		c.Errors = append(c.Errors, fmt.Errorf("%s digp: %w", c.Pos, err))
		return true, nil
	}
	c.ActorIDs = ids
	for _, id := range ids {
		value, err := s.Get(key.ActorKey(id))
		if errors.Is(err, ErrNotFound) {
			c.Errors = append(c.Errors, fmt.Errorf("%s actor %d: %w", c.Pos, id.Int64(), err))
			continue
		}
		if err != nil {
			return true, err
		}
		nt, err := nbt.Unmarshal(value)
		if err != nil {
			c.Errors = append(c.Errors, fmt.Errorf("%s actor %d: %w", c.Pos, id.Int64(), err))
			continue
		}
		c.Entities = append(c.Entities, nt)
	}
	return true, nil
}

func (c *Chunk) apply(r *Record) {
	switch {
	case r.SubChunk != nil:
		c.SubChunks[r.Key.SubChunkY] = r.SubChunk
	case r.Biomes != nil:
		c.Biomes = r.Biomes
	case r.Biomes2D != nil:
		c.Biomes2D = r.Biomes2D
	case r.Key.Tag == key.Version || r.Key.Tag == key.LegacyVersion:
		c.Version = r.Version
	case r.Key.Tag == key.FinalizedState:
		c.Finalized = r.State
	case r.Key.Tag == key.BlockEntity:
		c.BlockEntities = r.NBT
	case r.Key.Tag == key.Entity:
		c.entityRecord = true
		c.Entities = r.NBT
	case r.Key.Tag == key.PendingTicks:
		c.PendingTicks = r.NBT
	default:
		if r.NBT != nil {
			c.Other[r.Key.Tag] = nbt.Marshal(r.NBT[0].Name, r.NBT[0].Tag)
		} else {
			c.Other[r.Key.Tag] = r.Raw
		}
	}
}

// SubChunkYs 按升序返回已存在的子区块Y
func (c *Chunk) SubChunkYs() []int8 {
	ys := make([]int8, 0, len(c.SubChunks))
	for y := range c.SubChunks {
		ys = append(ys, y)
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	return ys
}

func inColumn(x, z int) bool {
	return x >= 0 && x < coord.ChunkSize && z >= 0 && z < coord.ChunkSize
}

// Block 返回区块内方块坐标处指定层的方块；x、z 为区块内坐标，y 为世界高度
func (c *Chunk) Block(x int, y int32, z int, layer int) (subchunk.Block, bool) {
	s, ok := c.SubChunks[int8(coord.BlockToChunk(y))]
	if !ok {
		return subchunk.Block{}, false
	}
	return s.Block(x, int(y&0xf), z, layer)
}

// Biome 返回方块坐标处的生物群系ID。没有 Data3D 时使用 Data2D 的列生物群系。
func (c *Chunk) Biome(x int, y int32, z int) (int32, bool) {
	if !inColumn(x, z) || !c.Dimension.Valid() {
		return 0, false
	}
	if minY, maxY := c.Dimension.BlockYRange(); y < minY || y > maxY {
		return 0, false
	}
	if c.Biomes == nil {
		if c.Biomes2D == nil {
			return 0, false
		}
		return int32(c.Biomes2D.At(x, z)), true
	}
	lo, _ := c.Dimension.SubChunkRange()
	s, ok := c.Biomes.Section(int(coord.BlockToChunk(y)) - int(lo))
	if !ok {
		return 0, false
	}
	return s.At(x, int(y&0xf), z), true
}

// Keys 区块全部记录对应的键
func (c *Chunk) Keys() []key.ChunkKey {
	var keys []key.ChunkKey
	add := func(tag key.Tag) {
		keys = append(keys, key.Chunk(c.Pos, c.Dimension, tag))
	}
	if c.Version != 0 {
		add(key.Version)
	}
	for _, y := range c.SubChunkYs() {
		keys = append(keys, key.SubChunk(c.Pos.SubChunk(y), c.Dimension))
	}
	if c.Biomes != nil {
		add(key.Data3D)
	}
	if c.Biomes2D != nil {
		add(key.Data2D)
	}
	if c.BlockEntities != nil {
		add(key.BlockEntity)
	}
	if c.entityRecord {
		add(key.Entity)
	}
	return keys
}
