package format

import (
	"io"
	"strconv"

	"bedrockdb/src/coord"
	"bedrockdb/src/nbt"
	"bedrockdb/src/subchunk"
	"bedrockdb/src/world"
)

// MCStructureDumper 将区块导出为基岩版结构文件（小端序NBT）。
// 结构覆盖区块中最低到最高的已存在子区块。
type MCStructureDumper struct{}

// NewMCStructureDumper 创建结构文件输出器
func NewMCStructureDumper() *MCStructureDumper {
	return &MCStructureDumper{}
}

func (m *MCStructureDumper) GetFormatName() string {
	return "mcstructure"
}

func (m *MCStructureDumper) GetExtension() string {
	return ".mcstructure"
}

// DumpTag 以小端序NBT写出标签
func (m *MCStructureDumper) DumpTag(w io.Writer, nt nbt.NamedTag) error {
	return nbt.NewEncoder(w).Encode(nt.Name, nt.Tag)
}

// DumpChunk 写出结构文件
func (m *MCStructureDumper) DumpChunk(w io.Writer, c *world.Chunk) error {
	root, err := Structure(c)
	if err != nil {
		return err
	}
	return nbt.NewEncoder(w).Encode("", root)
}

func intList(values ...int32) (*nbt.List, error) {
	items := make([]nbt.Tag, len(values))
	for i, v := range values {
		items[i] = nbt.Int(v)
	}
	return nbt.NewList(nbt.TagInt, items...)
}

// structurePalette 按首次出现顺序分配调色板下标
type structurePalette struct {
	blocks []subchunk.Block
}

func (p *structurePalette) index(b subchunk.Block) int32 {
	for i, e := range p.blocks {
		if e.Equal(b) {
			return int32(i)
		}
	}
	p.blocks = append(p.blocks, b)
	return int32(len(p.blocks) - 1)
}

// Structure 构造区块对应的结构文件根标签
func Structure(c *world.Chunk) (*nbt.Compound, error) {
	ys := c.SubChunkYs()
	var minY, height int32
	if len(ys) > 0 {
		minY = int32(ys[0]) * coord.ChunkSize
		height = (int32(ys[len(ys)-1])+1)*coord.ChunkSize - minY
	}
	const width, length = coord.ChunkSize, coord.ChunkSize
	volume := int(width * height * length)

	palette := &structurePalette{}
	primary := make([]nbt.Tag, volume)
	secondary := make([]nbt.Tag, volume)
	air := subchunk.NewBlock("minecraft:air", 0)
	i := 0
	for x := 0; x < width; x++ {
		for y := minY; y < minY+height; y++ {
			for z := 0; z < length; z++ {
				s := c.SubChunks[int8(coord.BlockToChunk(y))]
				b0, b1 := air, subchunk.Block{}
				has1 := false
				if s != nil {
					if b, ok := s.Block(x, int(y&0xf), z, 0); ok {
						b0 = b
					}
					b1, has1 = s.Block(x, int(y&0xf), z, 1)
				}
				primary[i] = nbt.Int(palette.index(b0))
				if has1 && b1.Name != "minecraft:air" {
					secondary[i] = nbt.Int(palette.index(b1))
				} else {
					secondary[i] = nbt.Int(-1)
				}
				i++
			}
		}
	}

	l0, err := nbt.NewList(nbt.TagInt, primary...)
	if err != nil {
		return nil, err
	}
	l1, err := nbt.NewList(nbt.TagInt, secondary...)
	if err != nil {
		return nil, err
	}
	indices, err := nbt.NewList(nbt.TagList, l0, l1)
	if err != nil {
		return nil, err
	}

	blockPalette, err := nbt.NewList(nbt.TagCompound)
	if err != nil {
		return nil, err
	}
	for _, b := range palette.blocks {
		if err := blockPalette.Append(b.Tag()); err != nil {
			return nil, err
		}
	}

	positionData := nbt.NewCompound()
	originX, originZ := coord.ChunkToBlock(c.Pos.X), coord.ChunkToBlock(c.Pos.Z)
	for _, be := range compounds(c.BlockEntities) {
		bx, okX := be.Int("x")
		by, okY := be.Int("y")
		bz, okZ := be.Int("z")
		if !okX || !okY || !okZ {
			continue
		}
		lx, ly, lz := bx-originX, by-minY, bz-originZ
		if lx < 0 || lx >= width || ly < 0 || ly >= height || lz < 0 || lz >= length {
			continue
		}
		entry := nbt.NewCompound()
		if err := entry.Append("block_entity_data", be); err != nil {
			return nil, err
		}
		positionData.Set(strconv.Itoa(int(lx*height*length+ly*length+lz)), entry)
	}

	defaultPalette := nbt.NewCompound()
	defaultPalette.Set("block_palette", blockPalette)
	defaultPalette.Set("block_position_data", positionData)
	palettes := nbt.NewCompound()
	palettes.Set("default", defaultPalette)

	entities, err := nbt.NewList(nbt.TagCompound)
	if err != nil {
		return nil, err
	}
	for _, e := range compounds(c.Entities) {
		if err := entities.Append(e); err != nil {
			return nil, err
		}
	}

	structure := nbt.NewCompound()
	structure.Set("block_indices", indices)
	structure.Set("entities", entities)
	structure.Set("palette", palettes)

	size, err := intList(width, height, length)
	if err != nil {
		return nil, err
	}
	origin, err := intList(originX, minY, originZ)
	if err != nil {
		return nil, err
	}
	root := nbt.NewCompound()
	root.Set("format_version", nbt.Int(1))
	root.Set("size", size)
	root.Set("structure", structure)
	root.Set("structure_world_origin", origin)
	return root, nil
}
