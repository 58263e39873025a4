package nbt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateName 向复合标签追加了已存在的名称
var ErrDuplicateName = errors.New("nbt: duplicate name in compound")

// Compound 复合标签，保持子标签的插入顺序，名称在同一复合标签内唯一。
// 零值可直接使用。
type Compound struct {
	names []string
	tags  []Tag
	index map[string]int
}

// NewCompound 创建空的复合标签
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

func (*Compound) Type() TagType { return TagCompound }
func (*Compound) isTag()        {}

// Append 在末尾追加子标签，名称重复时返回 ErrDuplicateName 且不修改复合标签
func (c *Compound) Append(name string, t Tag) error {
	if t == nil {
		panic("nbt: nil tag appended to compound " + name)
	}
	if t.Type() == TagEnd {
		return fmt.Errorf("nbt: cannot append %s as %q", TagEnd, name)
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, exists := c.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	c.index[name] = len(c.tags)
	c.names = append(c.names, name)
	c.tags = append(c.tags, t)
	return nil
}

// Set 按名称替换子标签，位置不变；名称不存在时追加到末尾
func (c *Compound) Set(name string, t Tag) {
	if i, ok := c.index[name]; ok {
		if t == nil || t.Type() == TagEnd {
			panic("nbt: invalid tag set on compound " + name)
		}
		c.tags[i] = t
		return
	}
	if err := c.Append(name, t); err != nil {
		panic(err)
	}
}

// Get 按名称获取子标签
func (c *Compound) Get(name string) (Tag, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.tags[i], true
}

// Len 返回子标签数量
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tags)
}

// Names 按插入顺序返回所有子标签名称
func (c *Compound) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Each 按插入顺序遍历子标签，fn 返回 false 时停止
func (c *Compound) Each(fn func(name string, t Tag) bool) {
	if c == nil {
		return
	}
	for i, name := range c.names {
		if !fn(name, c.tags[i]) {
			return
		}
	}
}

func (c *Compound) Byte(name string) (int8, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(Byte)
	return int8(v), ok && ok2
}

func (c *Compound) Short(name string) (int16, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(Short)
	return int16(v), ok && ok2
}

func (c *Compound) Int(name string) (int32, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(Int)
	return int32(v), ok && ok2
}

func (c *Compound) Long(name string) (int64, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(Long)
	return int64(v), ok && ok2
}

func (c *Compound) String(name string) (string, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(String)
	return string(v), ok && ok2
}

func (c *Compound) Compound(name string) (*Compound, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(*Compound)
	return v, ok && ok2
}

func (c *Compound) List(name string) (*List, bool) {
	t, ok := c.Get(name)
	v, ok2 := t.(*List)
	return v, ok && ok2
}

func (c *Compound) equal(o *Compound) bool {
	if c.Len() != o.Len() {
		return false
	}
	for i, name := range c.names {
		if o.names[i] != name || !Equal(c.tags[i], o.tags[i]) {
			return false
		}
	}
	return true
}

// MarshalJSON 按插入顺序输出JSON对象
func (c *Compound) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(c.tags[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
