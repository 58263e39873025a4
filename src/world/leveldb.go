package world

import (
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/storage"
	"github.com/df-mc/goleveldb/leveldb/util"
)

// LevelDB 世界的 db 目录，数据块使用基岩版的原始DEFLATE压缩
type LevelDB struct {
	db *leveldb.DB
}

func levelDBOptions(readOnly bool) *opt.Options {
	return &opt.Options{
		Compression: opt.FlateCompression,
		BlockSize:   16 * opt.KiB,
		ReadOnly:    readOnly,
	}
}

// OpenLevelDB 打开目录中的数据库
func OpenLevelDB(dir string, readOnly bool) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, levelDBOptions(readOnly))
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", dir, err)
	}
	return &LevelDB{db: db}, nil
}

// OpenLevelDBStorage 在给定的存储后端上打开数据库，测试中配合 storage.NewMemStorage 使用
func OpenLevelDBStorage(stor storage.Storage) (*LevelDB, error) {
	db, err := leveldb.Open(stor, levelDBOptions(false))
	if err != nil {
		return nil, fmt.Errorf("open leveldb: %w", err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *LevelDB) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	var rng *util.Range
	if len(prefix) > 0 {
		rng = util.BytesPrefix(prefix)
	}
	it := l.db.NewIterator(rng, nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

// Close 关闭数据库
func (l *LevelDB) Close() error {
	return l.db.Close()
}
