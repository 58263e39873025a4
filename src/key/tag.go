package key

import "fmt"

// Tag 区块记录类型，位于区块键的坐标（与维度）之后
type Tag byte

const (
	Data3D               Tag = 0x2B
	Version              Tag = 0x2C
	Data2D               Tag = 0x2D
	Data2DLegacy         Tag = 0x2E
	SubChunkPrefix       Tag = 0x2F
	LegacyTerrain        Tag = 0x30
	BlockEntity          Tag = 0x31
	Entity               Tag = 0x32
	PendingTicks         Tag = 0x33
	LegacyBlockExtraData Tag = 0x34
	BiomeState           Tag = 0x35
	FinalizedState       Tag = 0x36
	ConversionData       Tag = 0x37
	BorderBlocks         Tag = 0x38
	HardcodedSpawners    Tag = 0x39
	RandomTicks          Tag = 0x3A
	Checksums            Tag = 0x3B
	GenerationSeed       Tag = 0x3C
	GeneratedPreCaves    Tag = 0x3D
	BlendingBiomeHeight  Tag = 0x3E
	MetaDataHash         Tag = 0x3F
	BlendingData         Tag = 0x40
	ActorDigestVersion   Tag = 0x41
	LegacyVersion        Tag = 0x76
	AABBVolumes          Tag = 0x77
)

var tagNames = map[Tag]string{
	Data3D:               "Data3D",
	Version:              "Version",
	Data2D:               "Data2D",
	Data2DLegacy:         "Data2DLegacy",
	SubChunkPrefix:       "SubChunkPrefix",
	LegacyTerrain:        "LegacyTerrain",
	BlockEntity:          "BlockEntity",
	Entity:               "Entity",
	PendingTicks:         "PendingTicks",
	LegacyBlockExtraData: "LegacyBlockExtraData",
	BiomeState:           "BiomeState",
	FinalizedState:       "FinalizedState",
	ConversionData:       "ConversionData",
	BorderBlocks:         "BorderBlocks",
	HardcodedSpawners:    "HardcodedSpawners",
	RandomTicks:          "RandomTicks",
	Checksums:            "Checksums",
	GenerationSeed:       "GenerationSeed",
	GeneratedPreCaves:    "GeneratedPreCavesAndCliffsBlending",
	BlendingBiomeHeight:  "BlendingBiomeHeight",
	MetaDataHash:         "MetaDataHash",
	BlendingData:         "BlendingData",
	ActorDigestVersion:   "ActorDigestVersion",
	LegacyVersion:        "LegacyVersion",
	AABBVolumes:          "AABBVolumes",
}

// Known 判断是否为已知的记录类型
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(0x%02x)", byte(t))
}

// IsNBT 该类型记录的值是否为小端序NBT
func (t Tag) IsNBT() bool {
	switch t {
	case BlockEntity, Entity, PendingTicks, RandomTicks, BiomeState:
		return true
	}
	return false
}

// IsNBTList 该类型记录的值是否为首尾相接的多个NBT复合标签
func (t Tag) IsNBTList() bool {
	return t == BlockEntity || t == Entity || t == PendingTicks
}
