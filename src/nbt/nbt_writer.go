package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encoder 将NBT以小端序写入 io.Writer
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder 创建写入 w 的编码器
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode 写入一个带名称的根标签。只有底层 Writer 出错时才返回错误。
func (e *Encoder) Encode(name string, t Tag) error {
	e.buf = AppendTag(e.buf[:0], name, t)
	_, err := e.w.Write(e.buf)
	return err
}

// Marshal 编码一个带名称的根标签
func Marshal(name string, t Tag) []byte {
	return AppendTag(nil, name, t)
}

// AppendTag 将类型字节、名称与载荷追加到 buf。
// 标签树由本包的构造函数保证合法，因此编码不会失败；违反前提条件时直接 panic。
func AppendTag(buf []byte, name string, t Tag) []byte {
	if t == nil {
		panic("nbt: encoding nil tag " + name)
	}
	buf = append(buf, byte(t.Type()))
	if t.Type() == TagEnd {
		return buf
	}
	buf = appendString(buf, name)
	return appendPayload(buf, t)
}

func appendString(buf []byte, s string) []byte {
	if len(s) > math.MaxUint16 {
		panic(fmt.Sprintf("nbt: string of %d bytes exceeds %d", len(s), math.MaxUint16))
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...)
}

func appendLength(buf []byte, n int) []byte {
	if n > math.MaxInt32 {
		panic(fmt.Sprintf("nbt: length %d exceeds %d", n, math.MaxInt32))
	}
	return binary.LittleEndian.AppendUint32(buf, uint32(n))
}

// appendPayload 写入标签值
func appendPayload(buf []byte, t Tag) []byte {
	switch v := t.(type) {
	case Byte:
		return append(buf, byte(v))
	case Short:
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	case Int:
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	case Long:
		return binary.LittleEndian.AppendUint64(buf, uint64(v))
	case Float:
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
	case Double:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(v)))
	case ByteArray:
		buf = appendLength(buf, len(v))
		return append(buf, v...)
	case String:
		return appendString(buf, string(v))
	case IntArray:
		buf = appendLength(buf, len(v))
		for _, item := range v {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(item))
		}
		return buf
	case LongArray:
		buf = appendLength(buf, len(v))
		for _, item := range v {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(item))
		}
		return buf
	case *List:
		// 空列表保留声明的元素类型
		buf = append(buf, byte(v.ElemType()))
		buf = appendLength(buf, v.Len())
		for _, item := range v.items {
			buf = appendPayload(buf, item)
		}
		return buf
	case *Compound:
		for i, name := range v.names {
			buf = AppendTag(buf, name, v.tags[i])
		}
		return append(buf, byte(TagEnd))
	}
	panic(fmt.Sprintf("nbt: unsupported tag %T", t))
}
