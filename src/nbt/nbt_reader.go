package nbt

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"

	"bedrockdb/src/errs"
)

// MaxDepth 复合标签与列表允许的最大嵌套深度
const MaxDepth = 512

// Decoder 从字节切片中按小端序读取NBT，每次 Decode 读取一个根标签并推进偏移量
type Decoder struct {
	data  []byte
	off   int
	depth int
}

// NewDecoder 创建从 data 开头读取的解码器
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset 返回下一次读取的位置
func (d *Decoder) Offset() int {
	return d.off
}

// More 判断是否还有未读取的数据
func (d *Decoder) More() bool {
	return d.off < len(d.data)
}

// Decode 读取一个带名称的根标签。根位置上的 TAG_End 不带名称，原样返回。
func (d *Decoder) Decode() (NamedTag, error) {
	t, err := d.readType()
	if err != nil {
		return NamedTag{}, err
	}
	if t == TagEnd {
		return NamedTag{Tag: End{}}, nil
	}
	name, err := d.readString("tag name")
	if err != nil {
		return NamedTag{}, err
	}
	tag, err := d.readPayload(t)
	if err != nil {
		return NamedTag{}, err
	}
	return NamedTag{Name: name, Tag: tag}, nil
}

// Unmarshal 解码恰好一个根标签，多余的字节视为数据损坏
func Unmarshal(data []byte) (NamedTag, error) {
	d := NewDecoder(data)
	nt, err := d.Decode()
	if err != nil {
		return NamedTag{}, err
	}
	if d.More() {
		return NamedTag{}, errs.Malformed(d.off, "trailing bytes after root tag", 0, len(data)-d.off)
	}
	return nt, nil
}

// UnmarshalAll 解码首尾相接的多个根标签（方块实体、实体记录），遇到根位置的 TAG_End 时停止
func UnmarshalAll(data []byte) ([]NamedTag, error) {
	var tags []NamedTag
	d := NewDecoder(data)
	for d.More() {
		nt, err := d.Decode()
		if err != nil {
			return nil, err
		}
		if nt.Tag.Type() == TagEnd {
			break
		}
		tags = append(tags, nt)
	}
	return tags, nil
}

func (d *Decoder) need(n int, what string) error {
	if n < 0 {
		return errs.Malformed(d.off, what, "non-negative length", n)
	}
	if remaining := len(d.data) - d.off; n > remaining {
		return errs.Malformed(d.off, what, n, remaining)
	}
	return nil
}

func (d *Decoder) readType() (TagType, error) {
	if err := d.need(1, "tag type"); err != nil {
		return 0, err
	}
	t := TagType(d.data[d.off])
	if !t.Valid() {
		return 0, errs.Malformed(d.off, "unknown tag type", nil, byte(t))
	}
	d.off++
	return t, nil
}

func (d *Decoder) readU8(what string) (byte, error) {
	if err := d.need(1, what); err != nil {
		return 0, err
	}
	v := d.data[d.off]
	d.off++
	return v, nil
}

func (d *Decoder) readU16(what string) (uint16, error) {
	if err := d.need(2, what); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.data[d.off:])
	d.off += 2
	return v, nil
}

func (d *Decoder) readU32(what string) (uint32, error) {
	if err := d.need(4, what); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.data[d.off:])
	d.off += 4
	return v, nil
}

func (d *Decoder) readU64(what string) (uint64, error) {
	if err := d.need(8, what); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.data[d.off:])
	d.off += 8
	return v, nil
}

// readCount 读取 i32 元素个数，并确认剩余数据至少能容纳 count*elemSize 字节
func (d *Decoder) readCount(what string, elemSize int) (int, error) {
	start := d.off
	v, err := d.readU32(what)
	if err != nil {
		return 0, err
	}
	n := int(int32(v))
	if n < 0 {
		return 0, errs.Malformed(start, what, "non-negative length", n)
	}
	if elemSize > 0 && n > (len(d.data)-d.off)/elemSize {
		return 0, errs.Malformed(start, what, n*elemSize, len(d.data)-d.off)
	}
	return n, nil
}

func (d *Decoder) readString(what string) (string, error) {
	n, err := d.readU16(what + " length")
	if err != nil {
		return "", err
	}
	if err := d.need(int(n), what); err != nil {
		return "", err
	}
	b := d.data[d.off : d.off+int(n)]
	if !utf8.Valid(b) {
		return "", errs.Malformed(d.off, what, "valid UTF-8", "invalid byte sequence")
	}
	d.off += int(n)
	return string(b), nil
}

// readPayload 读取指定类型的载荷
func (d *Decoder) readPayload(t TagType) (Tag, error) {
	switch t {
	case TagByte:
		v, err := d.readU8("byte")
		return Byte(int8(v)), err
	case TagShort:
		v, err := d.readU16("short")
		return Short(int16(v)), err
	case TagInt:
		v, err := d.readU32("int")
		return Int(int32(v)), err
	case TagLong:
		v, err := d.readU64("long")
		return Long(int64(v)), err
	case TagFloat:
		v, err := d.readU32("float")
		return Float(math.Float32frombits(v)), err
	case TagDouble:
		v, err := d.readU64("double")
		return Double(math.Float64frombits(v)), err
	case TagByteArray:
		n, err := d.readCount("byte array length", 1)
		if err != nil {
			return nil, err
		}
		arr := make(ByteArray, n)
		copy(arr, d.data[d.off:d.off+n])
		d.off += n
		return arr, nil
	case TagString:
		s, err := d.readString("string")
		return String(s), err
	case TagIntArray:
		n, err := d.readCount("int array length", 4)
		if err != nil {
			return nil, err
		}
		arr := make(IntArray, n)
		for i := range arr {
			arr[i] = int32(binary.LittleEndian.Uint32(d.data[d.off:]))
			d.off += 4
		}
		return arr, nil
	case TagLongArray:
		n, err := d.readCount("long array length", 8)
		if err != nil {
			return nil, err
		}
		arr := make(LongArray, n)
		for i := range arr {
			arr[i] = int64(binary.LittleEndian.Uint64(d.data[d.off:]))
			d.off += 8
		}
		return arr, nil
	case TagList:
		return d.readList()
	case TagCompound:
		return d.readCompound()
	}
	return nil, errs.Malformed(d.off, "unknown tag type", nil, byte(t))
}

func (d *Decoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return errs.Malformed(d.off, "nesting depth", MaxDepth, d.depth)
	}
	return nil
}

func (d *Decoder) readList() (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	elem, err := d.readType()
	if err != nil {
		return nil, err
	}
	start := d.off
	n, err := d.readCount("list length", elem.minPayloadSize())
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, errs.Malformed(start, "list of TAG_End", 0, n)
	}
	l := &List{elem: elem, items: make([]Tag, 0, n)}
	for i := 0; i < n; i++ {
		item, err := d.readPayload(elem)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, item)
	}
	return l, nil
}

func (d *Decoder) readCompound() (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	c := NewCompound()
	for {
		t, err := d.readType()
		if err != nil {
			return nil, err
		}
		if t == TagEnd {
			return c, nil
		}
		nameOff := d.off
		name, err := d.readString("tag name")
		if err != nil {
			return nil, err
		}
		child, err := d.readPayload(t)
		if err != nil {
			return nil, err
		}
		if err := c.Append(name, child); err != nil {
			if errors.Is(err, ErrDuplicateName) {
				return nil, errs.Malformed(nameOff, "duplicate compound name", nil, name)
			}
			return nil, err
		}
	}
}
