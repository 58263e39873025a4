package world

import "errors"

// ErrNotFound 键不存在
var ErrNotFound = errors.New("world: key not found")

// Store 有序键值存储。Iterate 按键的字节序遍历以 prefix 开头的记录，fn 返回 false 时停止；
// 传给 fn 的切片只在回调期间有效。
type Store interface {
	Get(key []byte) ([]byte, error)
	Iterate(prefix []byte, fn func(key, value []byte) bool) error
}

// WritableStore 可写的存储
type WritableStore interface {
	Store
	Put(key, value []byte) error
	Delete(key []byte) error
}
