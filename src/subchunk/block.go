package subchunk

import (
	"fmt"
	"strings"

	"bedrockdb/src/nbt"
)

// Block 调色板中的方块描述：名称、状态与方块版本
type Block struct {
	Name    string
	States  *nbt.Compound
	Version int32
}

// NewBlock 创建无状态的方块描述
func NewBlock(name string, version int32) Block {
	return Block{Name: name, States: nbt.NewCompound(), Version: version}
}

// BlockFromTag 从调色板复合标签读取方块描述。
// name 必须存在且为字符串；states 缺省为空复合标签；version 缺省为 0。
func BlockFromTag(t nbt.Tag) (Block, error) {
	c, ok := t.(*nbt.Compound)
	if !ok {
		return Block{}, fmt.Errorf("palette entry is %s, not a compound", t.Type())
	}
	name, ok := c.String("name")
	if !ok {
		return Block{}, fmt.Errorf("palette entry has no string name")
	}
	b := Block{Name: name, States: nbt.NewCompound()}
	if st, present := c.Get("states"); present {
		states, ok := st.(*nbt.Compound)
		if !ok {
			return Block{}, fmt.Errorf("states of %s is %s, not a compound", name, st.Type())
		}
		b.States = states
	}
	if v, present := c.Get("version"); present {
		version, ok := v.(nbt.Int)
		if !ok {
			return Block{}, fmt.Errorf("version of %s is %s, not an int", name, v.Type())
		}
		b.Version = int32(version)
	}
	return b, nil
}

// Tag 转换为调色板复合标签 {name, states, version}
func (b Block) Tag() *nbt.Compound {
	c := nbt.NewCompound()
	c.Set("name", nbt.String(b.Name))
	states := b.States
	if states == nil {
		states = nbt.NewCompound()
	}
	c.Set("states", states)
	c.Set("version", nbt.Int(b.Version))
	return c
}

// Equal 比较名称、版本与状态
func (b Block) Equal(o Block) bool {
	if b.Name != o.Name || b.Version != o.Version {
		return false
	}
	if b.States.Len() == 0 || o.States.Len() == 0 {
		return b.States.Len() == o.States.Len()
	}
	return nbt.Equal(b.States, o.States)
}

// State 读取字符串状态
func (b Block) State(name string) (string, bool) {
	return b.States.String(name)
}

// ShortName 去掉命名空间的名称
func (b Block) ShortName() string {
	if i := strings.IndexByte(b.Name, ':'); i >= 0 {
		return b.Name[i+1:]
	}
	return b.Name
}

func (b Block) String() string {
	if b.States.Len() == 0 {
		return b.Name
	}
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteByte('[')
	b.States.Each(func(name string, t nbt.Tag) bool {
		if sb.Len() > len(b.Name)+1 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%v", name, nbt.ToAny(t))
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
