package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bedrockdb/src/block"
	"bedrockdb/src/coord"
	"bedrockdb/src/key"
	"bedrockdb/src/subchunk"
)

// World 一个基岩版世界：level.dat 与键值存储
type World struct {
	Dir      string
	LevelDat *LevelDat
	store    Store
	closer   func() error
}

// Open 打开世界目录，目录中必须包含 level.dat 与 db
func Open(dir string, readOnly bool) (*World, error) {
	ld, err := ReadLevelDat(filepath.Join(dir, "level.dat"))
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	dbDir := filepath.Join(dir, "db")
	if info, err := os.Stat(dbDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open world: %s is not a directory", dbDir)
	}
	db, err := OpenLevelDB(dbDir, readOnly)
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	return &World{Dir: dir, LevelDat: ld, store: db, closer: db.Close}, nil
}

// New 在已有存储上构造世界，ld 可以为 nil
func New(s Store, ld *LevelDat) *World {
	return &World{LevelDat: ld, store: s}
}

// Store 底层存储
func (w *World) Store() Store {
	return w.store
}

// Close 关闭底层存储
func (w *World) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer()
}

// Chunk 读取区块
func (w *World) Chunk(pos coord.ChunkPos, dim coord.Dimension) (*Chunk, error) {
	return LoadChunk(w.store, pos, dim)
}

// SubChunk 读取单个子区块
func (w *World) SubChunk(pos coord.SubChunkPos, dim coord.Dimension) (*subchunk.SubChunk, error) {
	k := key.SubChunk(pos, dim)
	value, err := w.store.Get(k.Bytes())
	if err != nil {
		return nil, err
	}
	rec, err := DecodeRecord(k, value)
	if err != nil {
		return nil, fmt.Errorf("sub-chunk %v: %w", pos, err)
	}
	return rec.SubChunk, nil
}

// Block 读取世界坐标处第 0 层的方块并解析类型。子区块不存在时视为空气。
func (w *World) Block(pos coord.BlockPos, dim coord.Dimension) (subchunk.Block, block.Type, error) {
	if !dim.Valid() {
		return subchunk.Block{}, block.Unknown, fmt.Errorf("unknown %s", dim)
	}
	if minY, maxY := dim.BlockYRange(); pos.Y < minY || pos.Y > maxY {
		return subchunk.Block{}, block.Unknown, fmt.Errorf("y %d outside %s range [%d, %d]", pos.Y, dim, minY, maxY)
	}
	s, err := w.SubChunk(pos.SubChunk(), dim)
	if errors.Is(err, ErrNotFound) {
		air := subchunk.NewBlock("minecraft:air", 0)
		return air, block.Resolve(air), nil
	}
	if err != nil {
		return subchunk.Block{}, block.Unknown, err
	}
	x, y, z := pos.Local()
	b, ok := s.Block(x, y, z, 0)
	if !ok {
		return subchunk.Block{}, block.Unknown, fmt.Errorf("sub-chunk %v has no block layer", pos.SubChunk())
	}
	return b, block.Resolve(b), nil
}

// Keys 遍历存储中的全部键并分类
func (w *World) Keys(fn func(k key.Key, value []byte) bool) error {
	return w.store.Iterate(nil, func(raw, value []byte) bool {
		return fn(key.Parse(append([]byte(nil), raw...)), value)
	})
}

// Chunks 返回指定维度中存在记录的全部区块坐标（以 Version 记录为准）
func (w *World) Chunks(dim coord.Dimension) ([]coord.ChunkPos, error) {
	var out []coord.ChunkPos
	seen := make(map[coord.ChunkPos]bool)
	err := w.store.Iterate(nil, func(raw, _ []byte) bool {
		k, ok := key.DecodeChunkKey(raw)
		if !ok || k.Dimension != dim || (k.Tag != key.Version && k.Tag != key.LegacyVersion) {
			return true
		}
		if p := k.Pos(); !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
		return true
	})
	return out, err
}
