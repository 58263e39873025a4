package world

import (
	"testing"

	"github.com/df-mc/goleveldb/leveldb/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]WritableStore {
	t.Helper()
	db, err := OpenLevelDBStorage(storage.NewMemStorage())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]WritableStore{
		"memory":  NewMemStore(),
		"leveldb": db,
	}
}

func TestStoreGetPutDelete(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get([]byte("missing"))
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put([]byte("k"), []byte("v1")))
			require.NoError(t, s.Put([]byte("k"), []byte("v2")))
			v, err := s.Get([]byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), v)

			require.NoError(t, s.Delete([]byte("k")))
			_, err = s.Get([]byte("k"))
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreIteratePrefix(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"b2", "a", "b1", "b", "c", "ab"} {
				require.NoError(t, s.Put([]byte(k), []byte("v"+k)))
			}

			var keys []string
			require.NoError(t, s.Iterate([]byte("b"), func(k, v []byte) bool {
				keys = append(keys, string(k))
				assert.Equal(t, "v"+string(k), string(v))
				return true
			}))
			assert.Equal(t, []string{"b", "b1", "b2"}, keys)

			keys = nil
			require.NoError(t, s.Iterate(nil, func(k, _ []byte) bool {
				keys = append(keys, string(k))
				return len(keys) < 4
			}))
			assert.Equal(t, []string{"a", "ab", "b", "b1"}, keys)
		})
	}
}

func TestMemStoreCopiesValues(t *testing.T) {
	s := NewMemStore()
	v := []byte("abc")
	require.NoError(t, s.Put([]byte("k"), v))
	v[0] = 'x'

	got, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
	got[1] = 'y'

	again, _ := s.Get([]byte("k"))
	assert.Equal(t, []byte("abc"), again)
	assert.Equal(t, 1, s.Len())
}
