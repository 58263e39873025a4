package format

import (
	"bedrockdb/src/block"
	"bedrockdb/src/nbt"
	"bedrockdb/src/subchunk"
	"bedrockdb/src/world"
)

// 区块的导出视图，JSON 与 SNBT 共用

type paletteEntry struct {
	Name    string        `json:"name"`
	States  *nbt.Compound `json:"states,omitempty"`
	Version int32         `json:"version,omitempty"`
	Type    string        `json:"type"`
	Count   int           `json:"count"`
}

type layerView struct {
	BitsPerBlock int            `json:"bits_per_block"`
	Palette      []paletteEntry `json:"palette"`
}

type subChunkView struct {
	Y       int8        `json:"y"`
	Version byte        `json:"version"`
	Legacy  bool        `json:"legacy,omitempty"`
	Layers  []layerView `json:"layers"`
}

type biomeSectionView struct {
	Y       int8    `json:"y"`
	Palette []int32 `json:"palette"`
}

type chunkView struct {
	X             int32              `json:"x"`
	Z             int32              `json:"z"`
	Dimension     string             `json:"dimension"`
	Version       byte               `json:"version"`
	Finalized     int32              `json:"finalized_state"`
	SubChunks     []subChunkView     `json:"sub_chunks"`
	Biomes        []biomeSectionView `json:"biomes,omitempty"`
	Biomes2D      []int              `json:"biomes_2d,omitempty"`
	BlockEntities []*nbt.Compound    `json:"block_entities,omitempty"`
	Entities      []*nbt.Compound    `json:"entities,omitempty"`
	Errors        []string           `json:"errors,omitempty"`
}

func newPaletteEntry(b subchunk.Block, count int) paletteEntry {
	e := paletteEntry{Name: b.Name, Version: b.Version, Type: block.Resolve(b).Name, Count: count}
	if b.States.Len() > 0 {
		e.States = b.States
	}
	return e
}

func newSubChunkView(y int8, s *subchunk.SubChunk) subChunkView {
	v := subChunkView{Y: y, Version: s.Version}
	if s.Legacy != nil {
		v.Legacy = true
		var order []string
		counts := make(map[string]int)
		blocks := make(map[string]subchunk.Block)
		for i := 0; i < subchunk.Volume; i++ {
			b := s.Legacy.Block(i)
			key := b.String()
			if _, ok := counts[key]; !ok {
				order = append(order, key)
				blocks[key] = b
			}
			counts[key]++
		}
		lv := layerView{BitsPerBlock: 8}
		for _, key := range order {
			lv.Palette = append(lv.Palette, newPaletteEntry(blocks[key], counts[key]))
		}
		v.Layers = []layerView{lv}
		return v
	}
	for _, l := range s.Layers {
		counts := l.Counts()
		lv := layerView{BitsPerBlock: l.BitsPerBlock(), Palette: make([]paletteEntry, len(l.Palette))}
		for i, b := range l.Palette {
			lv.Palette[i] = newPaletteEntry(b, counts[i])
		}
		v.Layers = append(v.Layers, lv)
	}
	return v
}

func compounds(tags []nbt.NamedTag) []*nbt.Compound {
	var out []*nbt.Compound
	for _, nt := range tags {
		if c, ok := nt.Tag.(*nbt.Compound); ok {
			out = append(out, c)
		}
	}
	return out
}

func newChunkView(c *world.Chunk) chunkView {
	v := chunkView{
		X:             c.Pos.X,
		Z:             c.Pos.Z,
		Dimension:     c.Dimension.String(),
		Version:       c.Version,
		Finalized:     c.Finalized,
		SubChunks:     make([]subChunkView, 0, len(c.SubChunks)),
		BlockEntities: compounds(c.BlockEntities),
		Entities:      compounds(c.Entities),
	}
	for _, y := range c.SubChunkYs() {
		v.SubChunks = append(v.SubChunks, newSubChunkView(y, c.SubChunks[y]))
	}
	if c.Biomes != nil {
		lo, _ := c.Dimension.SubChunkRange()
		for i, s := range c.Biomes.Sections {
			if s != nil {
				v.Biomes = append(v.Biomes, biomeSectionView{Y: lo + int8(i), Palette: s.Palette})
			}
		}
	} else if c.Biomes2D != nil {
		v.Biomes2D = make([]int, len(c.Biomes2D.IDs))
		for i, id := range c.Biomes2D.IDs {
			v.Biomes2D[i] = int(id)
		}
	}
	for _, err := range c.Errors {
		v.Errors = append(v.Errors, err.Error())
	}
	return v
}
