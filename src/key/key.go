package key

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bedrockdb/src/coord"
	"bedrockdb/src/errs"
)

// Kind 存储键的分类
type Kind int

const (
	KindUnhandled Kind = iota
	KindChunk
	KindString
	KindPlayer
	KindMap
	KindVillage
	KindStructure
	KindActor
	KindDigest
	KindRealmsStories
)

var kindNames = [...]string{
	KindUnhandled:     "unhandled",
	KindChunk:         "chunk",
	KindString:        "string",
	KindPlayer:        "player",
	KindMap:           "map",
	KindVillage:       "village",
	KindStructure:     "structure",
	KindActor:         "actor",
	KindDigest:        "digest",
	KindRealmsStories: "realms_stories",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// 固定字符串键
const (
	LocalPlayer                  = "~local_player"
	AutonomousEntities           = "AutonomousEntities"
	BiomeData                    = "BiomeData"
	Dimension0                   = "dimension0"
	LevelChunkMetaDataDictionary = "LevelChunkMetaDataDictionary"
	MobEvents                    = "mobevents"
	NetherData                   = "Nether"
	TheEndData                   = "TheEnd"
	OverworldData                = "Overworld"
	Portals                      = "portals"
	SchedulerWT                  = "schedulerWT"
	Scoreboard                   = "scoreboard"
	FlatWorldLayers              = "game_flatworldlayers"
	MVillages                    = "mVillages"
)

var stringKeys = map[string]bool{
	LocalPlayer: true, AutonomousEntities: true, BiomeData: true, Dimension0: true,
	LevelChunkMetaDataDictionary: true, MobEvents: true, NetherData: true,
	TheEndData: true, OverworldData: true, Portals: true, SchedulerWT: true,
	Scoreboard: true, FlatWorldLayers: true, MVillages: true,
}

var nbtStringKeys = map[string]bool{
	LocalPlayer: true, AutonomousEntities: true, BiomeData: true,
	LevelChunkMetaDataDictionary: true, MobEvents: true, OverworldData: true,
	SchedulerWT: true, Scoreboard: true,
}

// 带前缀的键
const (
	PrefixPlayer        = "player_"
	PrefixPlayerServer  = "player_server_"
	PrefixMap           = "map_"
	PrefixVillage       = "VILLAGE_"
	PrefixStructure     = "structuretemplate_mystructure:"
	PrefixActor         = "actorprefix"
	PrefixDigest        = "digp"
	PrefixRealmsStories = "RealmsStoriesData_"
)

// ActorID 实体的8字节唯一标识，原样存储在 actorprefix 键与 digp 值中
type ActorID [8]byte

// Int64 按小端序解释实体标识
func (id ActorID) Int64() int64 {
	return int64(binary.LittleEndian.Uint64(id[:]))
}

// Key 解析后的存储键
type Key struct {
	Kind Kind
	Raw  []byte

	// KindChunk 使用全部字段，KindDigest 只使用 X、Z 与 Dimension
	Chunk ChunkKey
	// KindString 为完整键名；map/village/structure/realms 为前缀之后的部分
	Name string
	// KindPlayer
	PlayerID uuid.UUID
	Server   bool
	// KindActor
	Actor ActorID
}

// Parse 对存储键分类，无法识别的键归为 KindUnhandled
func Parse(b []byte) Key {
	k := Key{Raw: b}
	s := string(b)
	switch {
	case stringKeys[s]:
		k.Kind, k.Name = KindString, s
		return k
	case strings.HasPrefix(s, PrefixPlayerServer):
		if id, err := uuid.Parse(s[len(PrefixPlayerServer):]); err == nil {
			k.Kind, k.PlayerID, k.Server = KindPlayer, id, true
			return k
		}
	case strings.HasPrefix(s, PrefixPlayer):
		if id, err := uuid.Parse(s[len(PrefixPlayer):]); err == nil {
			k.Kind, k.PlayerID = KindPlayer, id
			return k
		}
	case hasSuffixAfter(s, PrefixMap):
		k.Kind, k.Name = KindMap, s[len(PrefixMap):]
		return k
	case hasSuffixAfter(s, PrefixVillage):
		k.Kind, k.Name = KindVillage, s[len(PrefixVillage):]
		return k
	case hasSuffixAfter(s, PrefixStructure):
		k.Kind, k.Name = KindStructure, s[len(PrefixStructure):]
		return k
	case strings.HasPrefix(s, PrefixActor) && len(b) == len(PrefixActor)+8:
		k.Kind = KindActor
		copy(k.Actor[:], b[len(PrefixActor):])
		return k
	case strings.HasPrefix(s, PrefixDigest) && (len(b) == 12 || len(b) == 16):
		if c, ok := decodeDigest(b[len(PrefixDigest):]); ok {
			k.Kind, k.Chunk = KindDigest, c
			return k
		}
	case hasSuffixAfter(s, PrefixRealmsStories):
		k.Kind, k.Name = KindRealmsStories, s[len(PrefixRealmsStories):]
		return k
	}
	if c, ok := DecodeChunkKey(b); ok {
		k.Kind, k.Chunk = KindChunk, c
	}
	return k
}

func hasSuffixAfter(s, prefix string) bool {
	return len(s) > len(prefix) && strings.HasPrefix(s, prefix)
}

func decodeDigest(b []byte) (ChunkKey, bool) {
	c := ChunkKey{
		X: int32(binary.LittleEndian.Uint32(b[0:])),
		Z: int32(binary.LittleEndian.Uint32(b[4:])),
	}
	if len(b) == 12 {
		c.Dimension = coord.Dimension(int32(binary.LittleEndian.Uint32(b[8:])))
		if c.Dimension == coord.Overworld || !c.Dimension.Valid() {
			return ChunkKey{}, false
		}
	}
	return c, true
}

// IsNBT 该键对应的值是否为小端序NBT
func (k Key) IsNBT() bool {
	switch k.Kind {
	case KindChunk:
		return k.Chunk.Tag.IsNBT()
	case KindString:
		return nbtStringKeys[k.Name]
	case KindPlayer, KindMap, KindVillage, KindStructure, KindActor:
		return true
	}
	return false
}

func (k Key) String() string {
	switch k.Kind {
	case KindChunk:
		s := fmt.Sprintf("%s %s %s", k.Chunk.Dimension, k.Chunk.Pos(), k.Chunk.Tag)
		if k.Chunk.Tag == SubChunkPrefix {
			s += fmt.Sprintf(" y=%d", k.Chunk.SubChunkY)
		}
		return s
	case KindDigest:
		return fmt.Sprintf("digp %s %s", k.Chunk.Dimension, k.Chunk.Pos())
	case KindPlayer:
		if k.Server {
			return PrefixPlayerServer + k.PlayerID.String()
		}
		return PrefixPlayer + k.PlayerID.String()
	case KindActor:
		return fmt.Sprintf("actorprefix %d", k.Actor.Int64())
	case KindUnhandled:
		return fmt.Sprintf("unhandled %x", k.Raw)
	}
	return string(k.Raw)
}

// PlayerKey 构造玩家数据的键
func PlayerKey(id uuid.UUID, server bool) []byte {
	if server {
		return []byte(PrefixPlayerServer + id.String())
	}
	return []byte(PrefixPlayer + id.String())
}

// DigestKey 构造区块实体索引（digp）的键
func DigestKey(pos coord.ChunkPos, dim coord.Dimension) []byte {
	return ChunkPrefix([]byte(PrefixDigest), pos, dim)
}

// ActorKey 构造实体记录的键
func ActorKey(id ActorID) []byte {
	return append([]byte(PrefixActor), id[:]...)
}

// ParseDigest 将 digp 记录的值拆分为实体标识
func ParseDigest(value []byte) ([]ActorID, error) {
	if len(value)%8 != 0 {
		return nil, errs.Malformed(len(value)-len(value)%8, "actor digest", "multiple of 8 bytes", len(value))
	}
	ids := make([]ActorID, len(value)/8)
	for i := range ids {
		copy(ids[i][:], value[i*8:])
	}
	return ids, nil
}
