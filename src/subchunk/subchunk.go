package subchunk

import (
	"encoding/binary"
	"fmt"

	"bedrockdb/src/coord"
	"bedrockdb/src/errs"
	"bedrockdb/src/nbt"
)

// 存储格式版本
const (
	VersionLegacy   byte = 0
	VersionSingle   byte = 1
	VersionLayered  byte = 8
	VersionIndexedY byte = 9
)

// MaxLayers 单个子区块允许的最大层数
const MaxLayers = 255

// SubChunk 一个 16x16x16 子区块的方块数据。
// 版本 8/9 使用 Layers（第 0 层为方块，第 1 层通常为含水方块）；
// 旧版扁平格式使用 Legacy。
type SubChunk struct {
	Version byte
	Y       int8
	HasY    bool
	Layers  []*Layer
	Legacy  *LegacyStorage
}

// New 创建版本 9 的子区块，只有一层且全部为 fill
func New(y int8, fill Block) *SubChunk {
	return &SubChunk{Version: VersionIndexedY, Y: y, HasY: true, Layers: []*Layer{NewLayer(fill)}}
}

// Block 返回坐标处指定层的方块，层不存在时返回 false
func (s *SubChunk) Block(x, y, z, layer int) (Block, bool) {
	if s.Legacy != nil {
		if layer != 0 {
			return Block{}, false
		}
		i, ok := coord.LinearIndex(x, y, z)
		if !ok {
			return Block{}, false
		}
		return s.Legacy.Block(i), true
	}
	if layer < 0 || layer >= len(s.Layers) {
		return Block{}, false
	}
	if _, ok := coord.LinearIndex(x, y, z); !ok {
		return Block{}, false
	}
	return s.Layers[layer].At(x, y, z), true
}

// Equal 结构化比较两个子区块
func (s *SubChunk) Equal(o *SubChunk) bool {
	if s.Version != o.Version || s.Y != o.Y || s.HasY != o.HasY || len(s.Layers) != len(o.Layers) {
		return false
	}
	if (s.Legacy == nil) != (o.Legacy == nil) || (s.Legacy != nil && *s.Legacy != *o.Legacy) {
		return false
	}
	for i := range s.Layers {
		if !s.Layers[i].Equal(o.Layers[i]) {
			return false
		}
	}
	return true
}

// Decode 解码子区块记录的值
func Decode(data []byte) (*SubChunk, error) {
	if len(data) == 0 {
		return nil, errs.Malformed(0, "sub-chunk version", 1, 0)
	}
	version := data[0]
	switch {
	case version == VersionLegacy || (version >= 2 && version <= 7):
		legacy, err := decodeLegacy(data[1:])
		if err != nil {
			return nil, errs.Shift(err, 1)
		}
		return &SubChunk{Version: version, Legacy: legacy}, nil
	case version == VersionSingle:
		return nil, errs.Unsupported(0, "sub-chunk version", version)
	case version == VersionLayered || version == VersionIndexedY:
	default:
		return nil, errs.Unsupported(0, "sub-chunk version", version)
	}

	r := &reader{data: data, off: 1}
	count, err := r.u8("layer count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.Malformed(1, "layer count", "at least 1", 0)
	}
	s := &SubChunk{Version: version, Layers: make([]*Layer, 0, count)}
	if version == VersionIndexedY {
		y, err := r.u8("sub-chunk y")
		if err != nil {
			return nil, err
		}
		s.Y, s.HasY = int8(y), true
	}
	for i := 0; i < int(count); i++ {
		l, err := r.layer()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		s.Layers = append(s.Layers, l)
	}
	return s, nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) need(n int, what string) error {
	if remaining := len(r.data) - r.off; n > remaining {
		return errs.Malformed(r.off, what, n, remaining)
	}
	return nil
}

func (r *reader) u8(what string) (byte, error) {
	if err := r.need(1, what); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *reader) i32(what string) (int32, error) {
	if err := r.need(4, what); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

// header 读取存储头字节，返回每方块位数
func (r *reader) header() (int, error) {
	start := r.off
	h, err := r.u8("storage header")
	if err != nil {
		return 0, err
	}
	if h&1 == 1 {
		return 0, errs.Unsupported(start, "runtime palette", h)
	}
	bpb := int(h >> 1)
	if !ValidBitsPerBlock(bpb) {
		return 0, errs.Malformed(start, "bits per block", "0-6, 8 or 16", bpb)
	}
	return bpb, nil
}

func (r *reader) indices(bpb int, out *[Volume]uint16) error {
	n := wordCount(bpb) * 4
	if err := r.need(n, "packed indices"); err != nil {
		return err
	}
	unpackIndices(r.data[r.off:r.off+n], bpb, out)
	r.off += n
	return nil
}

// paletteCount 读取调色板长度，bpb 为 0 时必须为 1
func (r *reader) paletteCount(bpb, minEntrySize int) (int, error) {
	start := r.off
	n, err := r.i32("palette count")
	if err != nil {
		return 0, err
	}
	switch {
	case n <= 0 || n > Volume:
		return 0, errs.Malformed(start, "palette count", "1-4096", n)
	case bpb == 0 && n != 1:
		return 0, errs.Malformed(start, "palette count", 1, n)
	case int(n) > (len(r.data)-r.off)/minEntrySize:
		return 0, errs.Malformed(start, "palette count", "entries backed by data", n)
	}
	return int(n), nil
}

func (r *reader) layer() (*Layer, error) {
	bpb, err := r.header()
	if err != nil {
		return nil, err
	}
	l := &Layer{}
	if err := r.indices(bpb, &l.Indices); err != nil {
		return nil, err
	}
	// 最小的调色板条目为只含 name 的复合标签
	n, err := r.paletteCount(bpb, 1+2+1+2+2+1)
	if err != nil {
		return nil, err
	}
	l.Palette = make([]Block, 0, n)
	dec := nbt.NewDecoder(r.data[r.off:])
	for i := 0; i < n; i++ {
		entryOff := r.off + dec.Offset()
		nt, err := dec.Decode()
		if err != nil {
			return nil, errs.Shift(err, r.off)
		}
		b, err := BlockFromTag(nt.Tag)
		if err != nil {
			return nil, errs.Malformed(entryOff, "palette entry", "block compound", err.Error())
		}
		l.Palette = append(l.Palette, b)
	}
	r.off += dec.Offset()

	for i, idx := range l.Indices {
		if int(idx) >= n {
			return nil, errs.Malformed(r.off, fmt.Sprintf("palette index at %d", i), fmt.Sprintf("< %d", n), idx)
		}
	}
	return l, nil
}

// Encode 编码子区块。调色板为空、索引越界等非法状态会 panic。
func Encode(s *SubChunk) []byte {
	if s.Legacy != nil {
		return s.Legacy.appendTo([]byte{s.Version})
	}
	if s.Version != VersionLayered && s.Version != VersionIndexedY {
		panic(fmt.Sprintf("subchunk: cannot encode version %d", s.Version))
	}
	if len(s.Layers) == 0 || len(s.Layers) > MaxLayers {
		panic(fmt.Sprintf("subchunk: layer count %d out of range", len(s.Layers)))
	}
	buf := []byte{s.Version, byte(len(s.Layers))}
	if s.Version == VersionIndexedY {
		buf = append(buf, byte(s.Y))
	}
	for _, l := range s.Layers {
		buf = appendLayer(buf, l)
	}
	return buf
}

func appendLayer(buf []byte, l *Layer) []byte {
	l.validate()
	bpb := l.BitsPerBlock()
	buf = append(buf, byte(bpb<<1))
	buf = appendIndices(buf, bpb, &l.Indices)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(l.Palette)))
	for _, b := range l.Palette {
		buf = nbt.AppendTag(buf, "", b.Tag())
	}
	return buf
}
