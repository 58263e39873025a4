package world

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

type memItem struct {
	key, value []byte
}

func memLess(a, b memItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// MemStore 基于B树的内存有序存储，可并发使用
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[memItem]
}

// NewMemStore 创建空的内存存储
func NewMemStore() *MemStore {
	return &MemStore{tree: btree.NewG[memItem](16, memLess)}
}

func (m *MemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.tree.Get(memItem{key: key})
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), item.value...), nil
}

func (m *MemStore) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.ReplaceOrInsert(memItem{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	})
	return nil
}

func (m *MemStore) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree.Delete(memItem{key: key})
	return nil
}

func (m *MemStore) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.tree.AscendGreaterOrEqual(memItem{key: prefix}, func(item memItem) bool {
		if !bytes.HasPrefix(item.key, prefix) {
			return false
		}
		return fn(item.key, item.value)
	})
	return nil
}

// Len 记录数
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Len()
}
