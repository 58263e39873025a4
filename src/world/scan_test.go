package world

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/coord"
	"bedrockdb/src/errs"
	"bedrockdb/src/key"
	"bedrockdb/src/nbt"
)

func scanFixture(t *testing.T) *MemStore {
	t.Helper()
	s := NewMemStore()
	testChunk(t, s, coord.ChunkPos{X: 0, Z: 0}, coord.Overworld)
	testChunk(t, s, coord.ChunkPos{X: 5, Z: -5}, coord.Nether)

	player := nbt.NewCompound()
	require.NoError(t, player.Append("Health", nbt.Float(20)))
	require.NoError(t, s.Put([]byte(key.LocalPlayer), nbt.Marshal("", player)))
	require.NoError(t, s.Put(key.PlayerKey(uuid.New(), false), nbt.Marshal("", player)))
	require.NoError(t, s.Put(key.DigestKey(coord.ChunkPos{}, coord.Overworld), make([]byte, 16)))

	// 两条损坏的记录
	require.NoError(t, s.Put(key.SubChunk(coord.SubChunkPos{X: 9, Y: 1, Z: 9}, coord.Overworld).Bytes(), []byte{8, 1, 0x0e}))
	require.NoError(t, s.Put(key.DigestKey(coord.ChunkPos{X: 1}, coord.Overworld), make([]byte, 5)))
	return s
}

func TestScan(t *testing.T) {
	s := scanFixture(t)
	total, err := Count(s, nil)
	require.NoError(t, err)

	var seen atomic.Int64
	stats, failures, err := Scan(context.Background(), s, 4, func() { seen.Add(1) })
	require.NoError(t, err)

	assert.Equal(t, total, stats.Records)
	assert.Equal(t, int64(total), seen.Load())
	assert.Equal(t, 15, stats.ByKind[key.KindChunk])
	assert.Equal(t, 1, stats.ByKind[key.KindString])
	assert.Equal(t, 1, stats.ByKind[key.KindPlayer])
	assert.Equal(t, 2, stats.ByKind[key.KindDigest])
	assert.Equal(t, 5, stats.ByTag[key.SubChunkPrefix])
	assert.Equal(t, 2, stats.Failed)
	require.Len(t, failures, 2)
	for _, f := range failures {
		assert.ErrorIs(t, f, errs.ErrMalformed)
	}
}

func TestScanSingleWorkerMatches(t *testing.T) {
	s := scanFixture(t)
	a, _, err := Scan(context.Background(), s, 1, nil)
	require.NoError(t, err)
	b, _, err := Scan(context.Background(), s, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Scan(ctx, scanFixture(t), 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
