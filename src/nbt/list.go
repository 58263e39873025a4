package nbt

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrListType 列表元素类型与列表声明的元素类型不一致
var ErrListType = errors.New("nbt: list element type mismatch")

// List 列表标签，元素无名称且类型相同，元素类型在创建时确定
type List struct {
	elem  TagType
	items []Tag
}

// NewList 创建元素类型为 elem 的列表。空列表的元素类型可以是 TagEnd，
// 但 TagEnd 列表不能包含任何元素。
func NewList(elem TagType, items ...Tag) (*List, error) {
	if !elem.Valid() {
		return nil, fmt.Errorf("nbt: invalid list element type %s", elem)
	}
	l := &List{elem: elem, items: make([]Tag, 0, len(items))}
	for _, t := range items {
		if err := l.Append(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (*List) Type() TagType { return TagList }
func (*List) isTag()        {}

// Append 追加元素
func (l *List) Append(t Tag) error {
	if t == nil {
		panic("nbt: nil tag appended to list")
	}
	if l.elem == TagEnd || t.Type() != l.elem {
		return fmt.Errorf("%w: list of %s, got %s", ErrListType, l.elem, t.Type())
	}
	l.items = append(l.items, t)
	return nil
}

// ElemType 返回元素类型
func (l *List) ElemType() TagType {
	return l.elem
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At 返回第 i 个元素
func (l *List) At(i int) Tag {
	return l.items[i]
}

// Each 按顺序遍历元素，fn 返回 false 时停止
func (l *List) Each(fn func(i int, t Tag) bool) {
	if l == nil {
		return
	}
	for i, t := range l.items {
		if !fn(i, t) {
			return
		}
	}
}

func (l *List) equal(o *List) bool {
	if l.elem != o.elem || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !Equal(l.items[i], o.items[i]) {
			return false
		}
	}
	return true
}

func (l *List) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}
