package nbt

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/errs"
)

func mustList(t *testing.T, elem TagType, items ...Tag) *List {
	t.Helper()
	l, err := NewList(elem, items...)
	require.NoError(t, err)
	return l
}

func sampleTree(t *testing.T) *Compound {
	t.Helper()
	inner := NewCompound()
	require.NoError(t, inner.Append("pillar_axis", String("y")))
	require.NoError(t, inner.Append("age", Int(3)))

	root := NewCompound()
	require.NoError(t, root.Append("b", Byte(-1)))
	require.NoError(t, root.Append("s", Short(-300)))
	require.NoError(t, root.Append("i", Int(math.MinInt32)))
	require.NoError(t, root.Append("l", Long(math.MaxInt64)))
	require.NoError(t, root.Append("f", Float(1.5)))
	require.NoError(t, root.Append("d", Double(-2.25)))
	require.NoError(t, root.Append("nan", Float(float32(math.NaN()))))
	require.NoError(t, root.Append("bytes", ByteArray{0, 1, 255}))
	require.NoError(t, root.Append("str", String("方块 ✓")))
	require.NoError(t, root.Append("empty", mustList(t, TagEnd)))
	require.NoError(t, root.Append("emptyInts", mustList(t, TagInt)))
	require.NoError(t, root.Append("names", mustList(t, TagString, String("a"), String("b"))))
	require.NoError(t, root.Append("nested", mustList(t, TagList, mustList(t, TagByte, Byte(1)), mustList(t, TagEnd))))
	require.NoError(t, root.Append("compounds", mustList(t, TagCompound, inner, NewCompound())))
	require.NoError(t, root.Append("states", inner))
	require.NoError(t, root.Append("ints", IntArray{1, -2, 3}))
	require.NoError(t, root.Append("longs", LongArray{math.MinInt64, 0}))
	require.NoError(t, root.Append("noInts", IntArray{}))
	return root
}

func TestRoundTrip(t *testing.T) {
	root := sampleTree(t)
	data := Marshal("root", root)

	nt, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "root", nt.Name)
	assert.True(t, Equal(root, nt.Tag), "decoded tree differs")

	got, ok := nt.Tag.(*Compound)
	require.True(t, ok)
	assert.Equal(t, root.Names(), got.Names())
	assert.Equal(t, data, Marshal("root", got))
}

func TestWireLayout(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Append("a", Int(1)))
	require.NoError(t, c.Append("l", mustList(t, TagShort, Short(2))))

	want := []byte{
		0x0a, 0x00, 0x00,
		0x03, 0x01, 0x00, 'a', 0x01, 0x00, 0x00, 0x00,
		0x09, 0x01, 0x00, 'l', 0x02, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00,
		0x00,
	}
	assert.Equal(t, want, Marshal("", c))
}

func TestEncoderWritesSameBytes(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode("x", root))
	assert.Equal(t, Marshal("x", root), buf.Bytes())
}

func TestCompoundDuplicateAppend(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Append("name", String("minecraft:stone")))
	err := c.Append("name", String("minecraft:dirt"))
	require.ErrorIs(t, err, ErrDuplicateName)

	v, _ := c.String("name")
	assert.Equal(t, "minecraft:stone", v)
	assert.Equal(t, 1, c.Len())
}

func TestCompoundSetKeepsPosition(t *testing.T) {
	var c Compound
	require.NoError(t, c.Append("a", Int(1)))
	require.NoError(t, c.Append("b", Int(2)))
	c.Set("a", String("x"))
	c.Set("c", Byte(3))

	assert.Equal(t, []string{"a", "b", "c"}, c.Names())
	s, ok := c.String("a")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = c.Int("a")
	assert.False(t, ok)
}

func TestListElementType(t *testing.T) {
	l := mustList(t, TagInt, Int(1))
	require.ErrorIs(t, l.Append(String("x")), ErrListType)
	assert.Equal(t, 1, l.Len())

	_, err := NewList(TagEnd, End{})
	require.ErrorIs(t, err, ErrListType)

	_, err = NewList(TagType(0x20))
	require.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	valid := Marshal("", sampleTree(t))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)/2]},
		{"missing end", valid[:len(valid)-1]},
		{"unknown root type", []byte{0x0d, 0x00, 0x00}},
		{"unknown child type", []byte{0x0a, 0x00, 0x00, 0x0f, 0x00, 0x00, 0x00}},
		{"string past end", []byte{0x08, 0x00, 0x00, 0x05, 0x00, 'a', 'b'}},
		{"invalid utf8 value", []byte{0x08, 0x00, 0x00, 0x02, 0x00, 0xc3, 0x28}},
		{"invalid utf8 name", []byte{0x01, 0x01, 0x00, 0xff, 0x00}},
		{"negative byte array", []byte{0x07, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}},
		{"int array past end", []byte{0x0b, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"list of end with items", []byte{0x09, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"list count past end", []byte{0x09, 0x00, 0x00, 0x03, 0xff, 0xff, 0x00, 0x00}},
		{"duplicate names", []byte{
			0x0a, 0x00, 0x00,
			0x01, 0x01, 0x00, 'a', 0x01,
			0x01, 0x01, 0x00, 'a', 0x02,
			0x00,
		}},
		{"trailing bytes", append(append([]byte{}, valid...), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrMalformed), "got %v", err)
		})
	}
}

func TestDecodeErrorCarriesOffset(t *testing.T) {
	_, err := Unmarshal([]byte{0x0a, 0x00, 0x00, 0x0f})
	require.Error(t, err)
	off, ok := errs.Offset(err)
	require.True(t, ok)
	assert.Equal(t, 3, off)
}

func TestDecodeDepthLimit(t *testing.T) {
	// 逐层嵌套的列表：每层为 TAG_List 元素类型 + 长度 1
	var data []byte
	data = append(data, byte(TagList), 0x00, 0x00)
	for i := 0; i < MaxDepth+1; i++ {
		data = append(data, byte(TagList), 0x01, 0x00, 0x00, 0x00)
	}
	data = append(data, byte(TagEnd), 0x00, 0x00, 0x00, 0x00)

	_, err := Unmarshal(data)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestDecoderAdvancesOffset(t *testing.T) {
	first := Marshal("a", Int(7))
	second := Marshal("b", String("x"))
	data := append(append([]byte{}, first...), second...)

	d := NewDecoder(data)
	nt, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, "a", nt.Name)
	assert.Equal(t, len(first), d.Offset())
	assert.True(t, d.More())

	nt, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, String("x"), nt.Tag)
	assert.False(t, d.More())
}

func TestUnmarshalAll(t *testing.T) {
	var data []byte
	for _, id := range []string{"Chest", "Sign"} {
		c := NewCompound()
		require.NoError(t, c.Append("id", String(id)))
		data = AppendTag(data, "", c)
	}
	tags, err := UnmarshalAll(data)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	id, _ := tags[1].Tag.(*Compound).String("id")
	assert.Equal(t, "Sign", id)

	tags, err = UnmarshalAll(nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestEncodePanicsOnOversizedName(t *testing.T) {
	assert.Panics(t, func() {
		Marshal(strings.Repeat("x", math.MaxUint16+1), Byte(1))
	})
}

func TestCompoundJSONKeepsOrder(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Append("z", Int(1)))
	require.NoError(t, c.Append("a", mustList(t, TagString, String("q"))))
	require.NoError(t, c.Append("m", NewCompound()))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["q"],"m":{}}`, string(out))
}

func TestEqual(t *testing.T) {
	a := sampleTree(t)
	b := sampleTree(t)
	assert.True(t, Equal(a, b))

	b.Set("i", Int(0))
	assert.False(t, Equal(a, b))

	c1 := NewCompound()
	require.NoError(t, c1.Append("x", Int(1)))
	require.NoError(t, c1.Append("y", Int(2)))
	c2 := NewCompound()
	require.NoError(t, c2.Append("y", Int(2)))
	require.NoError(t, c2.Append("x", Int(1)))
	assert.False(t, Equal(c1, c2), "child order is significant")

	assert.False(t, Equal(Int(1), Long(1)))
	assert.False(t, Equal(mustList(t, TagEnd), mustList(t, TagInt)))
}

func TestGzipRoundTrip(t *testing.T) {
	root := sampleTree(t)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(Marshal("structure", root))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	nt, err := ReadGzip(&buf)
	require.NoError(t, err)
	assert.Equal(t, "structure", nt.Name)
	assert.True(t, Equal(root, nt.Tag))
}

func TestToAny(t *testing.T) {
	c := NewCompound()
	require.NoError(t, c.Append("name", String("minecraft:stone")))
	require.NoError(t, c.Append("ids", mustList(t, TagInt, Int(1), Int(2))))

	got := ToAny(c).(map[string]any)
	assert.Equal(t, "minecraft:stone", got["name"])
	assert.Equal(t, []any{int32(1), int32(2)}, got["ids"])
	assert.Nil(t, ToAny(End{}))
}
