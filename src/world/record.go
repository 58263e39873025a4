package world

import (
	"encoding/binary"
	"fmt"

	"bedrockdb/src/errs"
	"bedrockdb/src/key"
	"bedrockdb/src/nbt"
	"bedrockdb/src/subchunk"
)

// Record 按记录类型解码后的区块记录，只有与类型对应的字段有值
type Record struct {
	Key      key.ChunkKey
	SubChunk *subchunk.SubChunk
	Biomes   *subchunk.Biomes
	Biomes2D *subchunk.Biomes2D
	NBT      []nbt.NamedTag
	Version  byte
	State    int32
	Raw      []byte
}

// DecodeRecord 根据键的记录类型将值交给对应的解码器；未解析的类型保留原始字节
func DecodeRecord(k key.ChunkKey, value []byte) (*Record, error) {
	r := &Record{Key: k}
	switch k.Tag {
	case key.SubChunkPrefix:
		s, err := subchunk.Decode(value)
		if err != nil {
			return nil, err
		}
		if s.HasY && s.Y != k.SubChunkY {
			return nil, errs.Malformed(2, "sub-chunk y", k.SubChunkY, s.Y)
		}
		if !s.HasY {
			s.Y = k.SubChunkY
		}
		r.SubChunk = s
	case key.Data3D:
		b, err := subchunk.DecodeBiomes(value, k.Dimension)
		if err != nil {
			return nil, err
		}
		r.Biomes = b
	case key.Data2D:
		b, err := subchunk.DecodeBiomes2D(value)
		if err != nil {
			return nil, err
		}
		r.Biomes2D = b
	case key.Version, key.LegacyVersion:
		if len(value) != 1 {
			return nil, errs.Malformed(0, "chunk version", 1, len(value))
		}
		r.Version = value[0]
	case key.FinalizedState:
		if len(value) != 4 {
			return nil, errs.Malformed(0, "finalized state", 4, len(value))
		}
		r.State = int32(binary.LittleEndian.Uint32(value))
	default:
		if k.Tag.IsNBTList() {
			tags, err := nbt.UnmarshalAll(value)
			if err != nil {
				return nil, err
			}
			r.NBT = tags
		} else if k.Tag.IsNBT() {
			nt, err := nbt.Unmarshal(value)
			if err != nil {
				return nil, err
			}
			r.NBT = []nbt.NamedTag{nt}
		} else {
			r.Raw = value
		}
	}
	return r, nil
}

// Summary 记录内容的一行描述
func (r *Record) Summary() string {
	switch {
	case r.SubChunk != nil && r.SubChunk.Legacy != nil:
		return fmt.Sprintf("legacy sub-chunk v%d", r.SubChunk.Version)
	case r.SubChunk != nil:
		sizes := make([]int, len(r.SubChunk.Layers))
		for i, l := range r.SubChunk.Layers {
			sizes[i] = len(l.Palette)
		}
		return fmt.Sprintf("sub-chunk v%d y=%d palettes=%v", r.SubChunk.Version, r.SubChunk.Y, sizes)
	case r.Biomes != nil:
		return fmt.Sprintf("biomes sections=%d", len(r.Biomes.Sections))
	case r.Biomes2D != nil:
		return "2d biomes"
	case r.NBT != nil:
		return fmt.Sprintf("%d nbt compound(s)", len(r.NBT))
	case r.Key.Tag == key.Version || r.Key.Tag == key.LegacyVersion:
		return fmt.Sprintf("chunk version %d", r.Version)
	case r.Key.Tag == key.FinalizedState:
		return fmt.Sprintf("finalized state %d", r.State)
	}
	return fmt.Sprintf("%d raw bytes", len(r.Raw))
}
