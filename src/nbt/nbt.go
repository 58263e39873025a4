package nbt

import (
	"fmt"
	"math"
)

// TagType 表示NBT标签类型
type TagType byte

const (
	TagEnd       TagType = 0x00
	TagByte      TagType = 0x01
	TagShort     TagType = 0x02
	TagInt       TagType = 0x03
	TagLong      TagType = 0x04
	TagFloat     TagType = 0x05
	TagDouble    TagType = 0x06
	TagByteArray TagType = 0x07
	TagString    TagType = 0x08
	TagList      TagType = 0x09
	TagCompound  TagType = 0x0a
	TagIntArray  TagType = 0x0b
	TagLongArray TagType = 0x0c
)

var tagTypeNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

// Valid 判断类型字节是否为已知的NBT类型
func (t TagType) Valid() bool {
	return t <= TagLongArray
}

func (t TagType) String() string {
	if t.Valid() {
		return tagTypeNames[t]
	}
	return fmt.Sprintf("TAG_Unknown(0x%02x)", byte(t))
}

// minPayloadSize 返回该类型载荷在线上至少占用的字节数
func (t TagType) minPayloadSize() int {
	switch t {
	case TagByte, TagCompound:
		return 1
	case TagShort, TagString:
		return 2
	case TagInt, TagFloat, TagByteArray, TagIntArray, TagLongArray:
		return 4
	case TagLong, TagDouble:
		return 8
	case TagList:
		return 5
	}
	return 0
}

// Tag 是所有NBT标签的封闭集合，只有本包内的类型可以实现它
type Tag interface {
	Type() TagType
	isTag()
}

// NamedTag 是带名称的根标签
type NamedTag struct {
	Name string
	Tag  Tag
}

type (
	End       struct{}
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

func (End) Type() TagType       { return TagEnd }
func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (ByteArray) Type() TagType { return TagByteArray }
func (String) Type() TagType    { return TagString }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

func (End) isTag()       {}
func (Byte) isTag()      {}
func (Short) isTag()     {}
func (Int) isTag()       {}
func (Long) isTag()      {}
func (Float) isTag()     {}
func (Double) isTag()    {}
func (ByteArray) isTag() {}
func (String) isTag()    {}
func (IntArray) isTag()  {}
func (LongArray) isTag() {}

// Equal 结构化比较两个标签，包括子标签顺序；浮点数按位比较
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case End:
		return true
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return math.Float32bits(float32(av)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(av)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		bv := b.(ByteArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case IntArray:
		bv := b.(IntArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case LongArray:
		bv := b.(LongArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case *List:
		return av.equal(b.(*List))
	case *Compound:
		return av.equal(b.(*Compound))
	}
	return false
}

// ToAny 将标签转换为普通Go值：复合标签变为 map[string]any，列表变为 []any，
// 数组与标量保持对应的Go类型
func ToAny(t Tag) any {
	switch v := t.(type) {
	case nil, End:
		return nil
	case Byte:
		return int8(v)
	case Short:
		return int16(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case ByteArray:
		return []byte(v)
	case String:
		return string(v)
	case IntArray:
		return []int32(v)
	case LongArray:
		return []int64(v)
	case *List:
		out := make([]any, 0, v.Len())
		v.Each(func(_ int, item Tag) bool {
			out = append(out, ToAny(item))
			return true
		})
		return out
	case *Compound:
		out := make(map[string]any, v.Len())
		v.Each(func(name string, item Tag) bool {
			out[name] = ToAny(item)
			return true
		})
		return out
	}
	return nil
}
