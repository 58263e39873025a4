package key

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/coord"
	"bedrockdb/src/errs"
)

func TestChunkKeyLayout(t *testing.T) {
	tests := []struct {
		name string
		key  ChunkKey
		want []byte
	}{
		{
			name: "overworld version",
			key:  ChunkKey{X: 1, Z: -1, Tag: Version},
			want: []byte{1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0x2c},
		},
		{
			name: "overworld sub-chunk",
			key:  ChunkKey{X: 2, Z: 3, Tag: SubChunkPrefix, SubChunkY: -4},
			want: []byte{2, 0, 0, 0, 3, 0, 0, 0, 0x2f, 0xfc},
		},
		{
			name: "nether block entities",
			key:  ChunkKey{X: 0, Z: 0, Dimension: coord.Nether, Tag: BlockEntity},
			want: []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0x31},
		},
		{
			name: "end sub-chunk",
			key:  ChunkKey{X: -2, Z: 5, Dimension: coord.End, Tag: SubChunkPrefix, SubChunkY: 15},
			want: []byte{0xfe, 0xff, 0xff, 0xff, 5, 0, 0, 0, 2, 0, 0, 0, 0x2f, 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.key.Bytes()
			assert.Equal(t, tt.want, b)
			assert.Equal(t, len(b), tt.key.Len())

			got, ok := DecodeChunkKey(b)
			require.True(t, ok)
			assert.Equal(t, tt.key, got)
		})
	}
}

func TestChunkKeyRoundTripAllTags(t *testing.T) {
	for tag := range tagNames {
		for _, dim := range coord.Dimensions {
			k := ChunkKey{X: -12345, Z: 678, Dimension: dim, Tag: tag}
			if tag == SubChunkPrefix {
				k.SubChunkY = -3
			}
			got, ok := DecodeChunkKey(k.Bytes())
			require.True(t, ok, "%s %s", dim, tag)
			require.Equal(t, k, got)
		}
	}
}

func TestDecodeChunkKeyRejects(t *testing.T) {
	valid := ChunkKey{X: 1, Z: 2, Tag: SubChunkPrefix}.Bytes()
	tests := map[string][]byte{
		"too short":           valid[:8],
		"odd length":          append(append([]byte{}, valid...), 0, 0),
		"unknown tag":         {0, 0, 0, 0, 0, 0, 0, 0, 0x99},
		"missing y":           {0, 0, 0, 0, 0, 0, 0, 0, 0x2f},
		"y on chunk record":   {0, 0, 0, 0, 0, 0, 0, 0, 0x2c, 0},
		"unknown dimension":   {0, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 0x2c},
		"explicit overworld":  {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x2c},
		"nether missing y":    {0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0x2f},
		"nether y on version": {0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0x2c, 0},
	}
	for name, b := range tests {
		_, ok := DecodeChunkKey(b)
		assert.False(t, ok, name)
	}
}

func TestSubChunkKeyFromPos(t *testing.T) {
	pos := coord.BlockPos{X: -1, Y: -64, Z: 17}.SubChunk()
	k := SubChunk(pos, coord.Overworld)
	assert.Equal(t, ChunkKey{X: -1, Z: 1, Tag: SubChunkPrefix, SubChunkY: -4}, k)
	assert.Equal(t, coord.ChunkPos{X: -1, Z: 1}, k.Pos())
}

func TestParseStringKeys(t *testing.T) {
	k := Parse([]byte("~local_player"))
	assert.Equal(t, KindString, k.Kind)
	assert.Equal(t, LocalPlayer, k.Name)
	assert.True(t, k.IsNBT())

	k = Parse([]byte("portals"))
	assert.Equal(t, KindString, k.Kind)
	assert.False(t, k.IsNBT())
}

func TestParsePlayerKeys(t *testing.T) {
	id := uuid.MustParse("0d7a5d8e-1f0b-4c1b-9a64-1d7e3b1f6e2a")

	k := Parse(PlayerKey(id, false))
	assert.Equal(t, KindPlayer, k.Kind)
	assert.Equal(t, id, k.PlayerID)
	assert.False(t, k.Server)

	k = Parse(PlayerKey(id, true))
	assert.Equal(t, KindPlayer, k.Kind)
	assert.True(t, k.Server)
	assert.Equal(t, "player_server_"+id.String(), k.String())

	assert.Equal(t, KindUnhandled, Parse([]byte("player_notauuid")).Kind)
}

func TestParsePrefixedKeys(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		name string
	}{
		{"map_-4294967295", KindMap, "-4294967295"},
		{"VILLAGE_1a2b_INFO", KindVillage, "1a2b_INFO"},
		{"structuretemplate_mystructure:house", KindStructure, "house"},
		{"RealmsStoriesData_abc", KindRealmsStories, "abc"},
		{"map_", KindUnhandled, ""},
		{"somethingelse", KindUnhandled, ""},
	}
	for _, tt := range tests {
		k := Parse([]byte(tt.raw))
		assert.Equal(t, tt.kind, k.Kind, tt.raw)
		assert.Equal(t, tt.name, k.Name, tt.raw)
	}
}

func TestParseChunkAndDigestKeys(t *testing.T) {
	ck := ChunkKey{X: 3, Z: 4, Dimension: coord.Nether, Tag: SubChunkPrefix, SubChunkY: 2}
	k := Parse(ck.Bytes())
	assert.Equal(t, KindChunk, k.Kind)
	assert.Equal(t, ck, k.Chunk)
	assert.False(t, k.IsNBT())

	k = Parse(ChunkKey{X: 3, Z: 4, Tag: BlockEntity}.Bytes())
	assert.True(t, k.IsNBT())

	pos := coord.ChunkPos{X: -7, Z: 9}
	k = Parse(DigestKey(pos, coord.End))
	assert.Equal(t, KindDigest, k.Kind)
	assert.Equal(t, pos, k.Chunk.Pos())
	assert.Equal(t, coord.End, k.Chunk.Dimension)

	k = Parse(DigestKey(pos, coord.Overworld))
	assert.Equal(t, KindDigest, k.Kind)
	assert.Len(t, k.Raw, 12)
}

func TestActorKeys(t *testing.T) {
	var id ActorID
	binary.LittleEndian.PutUint64(id[:], 42)

	k := Parse(ActorKey(id))
	assert.Equal(t, KindActor, k.Kind)
	assert.Equal(t, id, k.Actor)
	assert.Equal(t, int64(42), k.Actor.Int64())
	assert.True(t, k.IsNBT())

	value := append(append([]byte{}, id[:]...), id[:]...)
	ids, err := ParseDigest(value)
	require.NoError(t, err)
	assert.Equal(t, []ActorID{id, id}, ids)

	_, err = ParseDigest(value[:9])
	assert.ErrorIs(t, err, errs.ErrMalformed)
}

func TestUnhandledKeyIsNotAnError(t *testing.T) {
	k := Parse([]byte{0xde, 0xad})
	assert.Equal(t, KindUnhandled, k.Kind)
	assert.False(t, k.IsNBT())
	assert.Equal(t, "unhandled dead", k.String())
}
