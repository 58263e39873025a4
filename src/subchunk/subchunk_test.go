package subchunk

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/errs"
	"bedrockdb/src/nbt"
)

func testBlock(t *testing.T, name string, states map[string]string) Block {
	t.Helper()
	b := NewBlock(name, 18100737)
	for k, v := range states {
		require.NoError(t, b.States.Append(k, nbt.String(v)))
	}
	return b
}

func randomLayer(t *testing.T, rng *rand.Rand, paletteSize int) *Layer {
	t.Helper()
	palette := make([]Block, paletteSize)
	for i := range palette {
		palette[i] = testBlock(t, fmt.Sprintf("minecraft:block_%d", i), map[string]string{"variant": fmt.Sprint(i % 3)})
	}
	l := NewLayer(palette...)
	for i := range l.Indices {
		l.Indices[i] = uint16(rng.Intn(paletteSize))
	}
	return l
}

func TestBitsFor(t *testing.T) {
	tests := map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 16: 4, 17: 5, 32: 5, 33: 6, 64: 6, 65: 8, 256: 8, 257: 16, 4096: 16}
	for n, want := range tests {
		assert.Equal(t, want, BitsFor(n), "palette size %d", n)
	}
	for _, bpb := range []int{7, 9, 15, 17, 32} {
		assert.False(t, ValidBitsPerBlock(bpb))
	}
}

func TestWordCount(t *testing.T) {
	tests := map[int]int{0: 0, 1: 128, 2: 256, 3: 410, 4: 512, 5: 683, 6: 820, 8: 1024, 16: 2048}
	for bpb, want := range tests {
		assert.Equal(t, want, wordCount(bpb), "bpb %d", bpb)
	}
}

func TestRoundTripAllWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bpb := range []int{1, 2, 3, 4, 5, 6, 8, 16} {
		sizes := []int{1<<bpb/2 + 1, 1 << bpb}
		if bpb == 16 {
			sizes = []int{257, 4096}
		}
		for _, size := range sizes {
			t.Run(fmt.Sprintf("bpb%d/palette%d", bpb, size), func(t *testing.T) {
				s := New(-2, NewBlock("minecraft:air", 0))
				s.Layers[0] = randomLayer(t, rng, size)
				require.Equal(t, bpb, s.Layers[0].BitsPerBlock())

				data := Encode(s)
				assert.Equal(t, byte(bpb<<1), data[3])

				got, err := Decode(data)
				require.NoError(t, err)
				assert.True(t, s.Equal(got))
				assert.Equal(t, data, Encode(got))
			})
		}
	}
}

func TestRoundTripVersion8TwoLayers(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := &SubChunk{
		Version: VersionLayered,
		Layers:  []*Layer{randomLayer(t, rng, 5), NewLayer(NewBlock("minecraft:air", 0))},
	}
	s.Layers[1].Set(3, 4, 5, testBlock(t, "minecraft:water", map[string]string{"liquid_depth": "0"}))

	data := Encode(s)
	assert.Equal(t, []byte{8, 2, 3 << 1}, data[:3])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, got.HasY)
	assert.True(t, s.Equal(got))

	b, ok := got.Block(3, 4, 5, 1)
	require.True(t, ok)
	assert.Equal(t, "minecraft:water", b.Name)
	_, ok = got.Block(0, 0, 0, 2)
	assert.False(t, ok)
}

// encodeRaw 按存储格式手工拼出一个版本 9 的单层子区块
func encodeRaw(t *testing.T, y int8, bpb int, indices func(i int) uint16, palette []Block, count int32) []byte {
	t.Helper()
	buf := []byte{9, 1, byte(y), byte(bpb << 1)}
	if bpb > 0 {
		perWord := 32 / bpb
		for i := 0; i < Volume; i += perWord {
			var word uint32
			for j := 0; j < perWord && i+j < Volume; j++ {
				word |= uint32(indices(i+j)) << (j * bpb)
			}
			buf = binary.LittleEndian.AppendUint32(buf, word)
		}
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(count))
	for _, b := range palette {
		buf = nbt.AppendTag(buf, "", b.Tag())
	}
	return buf
}

func TestDecodeSixteenEntryPalette(t *testing.T) {
	palette := make([]Block, 16)
	for i := range palette {
		palette[i] = NewBlock(fmt.Sprintf("minecraft:b%d", i), 1)
	}
	data := encodeRaw(t, 0, 4, func(i int) uint16 { return uint16(i % 16) }, palette, 16)

	s, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, s.Layers, 1)
	assert.True(t, s.HasY)
	assert.Equal(t, int8(0), s.Y)
	assert.Len(t, s.Layers[0].Palette, 16)
	for i, idx := range s.Layers[0].Indices {
		require.Less(t, int(idx), 16)
		require.Equal(t, uint16(i%16), idx)
	}
	b, _ := s.Block(0, 5, 0, 0)
	assert.Equal(t, "minecraft:b5", b.Name)
}

func TestVersion9HeaderOrder(t *testing.T) {
	s := New(-4, NewBlock("minecraft:stone", 1))
	s.Layers = append(s.Layers, NewLayer(NewBlock("minecraft:water", 1)))

	data := Encode(s)
	// [版本][层数][Y]
	assert.Equal(t, []byte{VersionIndexedY, 2, 0xfc}, data[:3])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int8(-4), got.Y)
	assert.Len(t, got.Layers, 2)

	// Y 在前的写法会把 Y 当成层数
	swapped := append([]byte{VersionIndexedY, 0, 1}, data[3:]...)
	_, err = Decode(swapped)
	assert.ErrorIs(t, err, errs.ErrMalformed)
}

func TestDecodeSingleEntryLayer(t *testing.T) {
	stone := NewBlock("minecraft:stone", 1)
	data := encodeRaw(t, -4, 0, nil, []Block{stone}, 1)

	s, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int8(-4), s.Y)
	assert.True(t, s.Layers[0].Uniform())
	assert.Equal(t, data, Encode(s))
}

func TestBlockDescriptorFromCompound(t *testing.T) {
	states := nbt.NewCompound()
	require.NoError(t, states.Append("pillar_axis", nbt.String("y")))
	require.NoError(t, states.Append("age", nbt.Int(3)))
	c := nbt.NewCompound()
	require.NoError(t, c.Append("name", nbt.String("minecraft:oak_log")))
	require.NoError(t, c.Append("states", states))
	require.NoError(t, c.Append("version", nbt.Int(18100737)))

	nt, err := nbt.Unmarshal(nbt.Marshal("", c))
	require.NoError(t, err)
	b, err := BlockFromTag(nt.Tag)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:oak_log", b.Name)
	assert.Equal(t, int32(18100737), b.Version)
	assert.True(t, nbt.Equal(states, b.States))
	assert.True(t, nbt.Equal(c, b.Tag()))
	assert.Equal(t, "minecraft:oak_log[pillar_axis=y,age=3]", b.String())
	assert.Equal(t, "oak_log", b.ShortName())
}

func TestBlockFromTagDefaults(t *testing.T) {
	c := nbt.NewCompound()
	require.NoError(t, c.Append("name", nbt.String("minecraft:dirt")))
	b, err := BlockFromTag(c)
	require.NoError(t, err)
	assert.Equal(t, int32(0), b.Version)
	assert.Equal(t, 0, b.States.Len())

	_, err = BlockFromTag(nbt.NewCompound())
	assert.Error(t, err)
	_, err = BlockFromTag(nbt.String("minecraft:dirt"))
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	stone := NewBlock("minecraft:stone", 1)
	dirt := NewBlock("minecraft:dirt", 1)
	good := encodeRaw(t, 0, 1, func(i int) uint16 { return uint16(i & 1) }, []Block{stone, dirt}, 2)

	notCompound := append([]byte{9, 1, 0, 0}, 1, 0, 0, 0)
	notCompound = nbt.AppendTag(notCompound, "", nbt.String("minecraft:stone"))

	noName := append([]byte{9, 1, 0, 0}, 1, 0, 0, 0)
	noName = nbt.AppendTag(noName, "", nbt.NewCompound())
	noName = append(noName, make([]byte, 8)...)

	tests := []struct {
		name string
		data []byte
		kind error
	}{
		{"empty", nil, errs.ErrMalformed},
		{"version 1", []byte{1, 0}, errs.ErrUnsupported},
		{"version 10", []byte{10, 1, 0}, errs.ErrUnsupported},
		{"zero layers", []byte{9, 0, 0}, errs.ErrMalformed},
		{"runtime palette", []byte{9, 1, 0, 0x03}, errs.ErrUnsupported},
		{"bits per block 7", []byte{9, 1, 0, 7 << 1}, errs.ErrMalformed},
		{"truncated words", good[:100], errs.ErrMalformed},
		{"truncated palette", good[:len(good)-3], errs.ErrMalformed},
		{"index beyond palette", encodeRaw(t, 0, 1, func(i int) uint16 { return uint16(i & 1) }, []Block{stone}, 1), errs.ErrMalformed},
		{"negative palette count", encodeRaw(t, 0, 1, func(int) uint16 { return 0 }, nil, -1), errs.ErrMalformed},
		{"palette too large", encodeRaw(t, 0, 1, func(int) uint16 { return 0 }, nil, 4097), errs.ErrMalformed},
		{"palette count not backed", encodeRaw(t, 0, 1, func(int) uint16 { return 0 }, nil, 100), errs.ErrMalformed},
		{"single entry count 2", encodeRaw(t, 0, 0, nil, []Block{stone, dirt}, 2), errs.ErrMalformed},
		{"entry not compound", notCompound, errs.ErrMalformed},
		{"entry without name", noName, errs.ErrMalformed},
		{"short legacy", append([]byte{0}, make([]byte, 100)...), errs.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestPaletteErrorOffsetIsAbsolute(t *testing.T) {
	data := append([]byte{9, 1, 0, 0}, 1, 0, 0, 0)
	data = append(data, 0x0a, 0x00, 0x00, 0x42)
	data = append(data, make([]byte, 8)...)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrMalformed)
	off, ok := errs.Offset(err)
	require.True(t, ok)
	assert.Equal(t, 11, off)
}

func TestEncodePanicsOnInvalidLayer(t *testing.T) {
	l := NewLayer(NewBlock("minecraft:air", 0))
	l.Indices[7] = 3
	s := &SubChunk{Version: VersionIndexedY, HasY: true, Layers: []*Layer{l}}
	assert.Panics(t, func() { Encode(s) })

	assert.Panics(t, func() { Encode(&SubChunk{Version: VersionIndexedY}) })
	assert.Panics(t, func() { Encode(&SubChunk{Version: VersionSingle, Layers: []*Layer{NewLayer(NewBlock("minecraft:air", 0))}}) })
}

func TestLayerSetGrowsPalette(t *testing.T) {
	air := NewBlock("minecraft:air", 0)
	l := NewLayer(air)
	assert.Equal(t, 0, l.BitsPerBlock())

	stone := NewBlock("minecraft:stone", 0)
	l.Set(15, 15, 15, stone)
	l.Set(0, 1, 0, stone)
	assert.Len(t, l.Palette, 2)
	assert.Equal(t, 1, l.BitsPerBlock())
	assert.Equal(t, []int{4094, 2}, l.Counts())
	assert.True(t, l.At(15, 15, 15).Equal(stone))
	assert.True(t, l.At(1, 1, 1).Equal(air))
	assert.Panics(t, func() { l.At(16, 0, 0) })
}

func TestLegacyRoundTrip(t *testing.T) {
	data := make([]byte, 1+Volume+Volume/2)
	data[0] = 2
	data[1+(1<<8|2<<4|3)] = 1
	data[1+Volume] = 0x21

	s, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, s.Legacy)
	assert.Equal(t, byte(2), s.Version)
	assert.True(t, s.Legacy.HasData)
	assert.Equal(t, byte(1), s.Legacy.DataAt(0))
	assert.Equal(t, byte(2), s.Legacy.DataAt(1))

	b, ok := s.Block(1, 3, 2, 0)
	require.True(t, ok)
	assert.Equal(t, "minecraft:stone", b.Name)
	b, _ = s.Block(0, 0, 0, 0)
	assert.Equal(t, "minecraft:air", b.Name)
	_, ok = s.Block(0, 0, 0, 1)
	assert.False(t, ok)

	assert.Equal(t, data, Encode(s))

	s.Legacy.SetDataAt(1, 0xf)
	assert.Equal(t, byte(0xf1), s.Legacy.Data[0])

	assert.Equal(t, "minecraft:unknown", LegacyName(255))
}

func TestLegacyWithoutData(t *testing.T) {
	data := append([]byte{0}, make([]byte, Volume)...)
	s, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, s.Legacy.HasData)
	assert.Equal(t, data, Encode(s))
}
