package subchunk

import "bedrockdb/src/errs"

// LegacyStorage 旧版扁平格式：4096 个数字方块ID与可选的 4 位数据值
type LegacyStorage struct {
	IDs     [Volume]byte
	Data    [Volume / 2]byte
	HasData bool
}

func decodeLegacy(data []byte) (*LegacyStorage, error) {
	if len(data) < Volume {
		return nil, errs.Malformed(0, "legacy block ids", Volume, len(data))
	}
	s := &LegacyStorage{}
	copy(s.IDs[:], data)
	rest := data[Volume:]
	if len(rest) >= Volume/2 {
		copy(s.Data[:], rest)
		s.HasData = true
	}
	return s, nil
}

func (s *LegacyStorage) appendTo(buf []byte) []byte {
	buf = append(buf, s.IDs[:]...)
	if s.HasData {
		buf = append(buf, s.Data[:]...)
	}
	return buf
}

// DataAt 返回线性序号 i 处的数据值
func (s *LegacyStorage) DataAt(i int) byte {
	b := s.Data[i>>1]
	if i&1 == 1 {
		return b >> 4
	}
	return b & 0xf
}

// SetDataAt 设置线性序号 i 处的数据值
func (s *LegacyStorage) SetDataAt(i int, v byte) {
	if v > 0xf {
		panic("subchunk: legacy data value exceeds 4 bits")
	}
	idx := i >> 1
	if i&1 == 1 {
		s.Data[idx] = s.Data[idx]&0xf | v<<4
	} else {
		s.Data[idx] = s.Data[idx]&0xf0 | v
	}
	s.HasData = true
}

// Block 将线性序号 i 处的数字ID映射为方块描述，未知ID映射为 minecraft:unknown
func (s *LegacyStorage) Block(i int) Block {
	return NewBlock(LegacyName(s.IDs[i]), 0)
}

// LegacyName 返回数字方块ID对应的名称
func LegacyName(id byte) string {
	if name, ok := legacyNames[id]; ok {
		return "minecraft:" + name
	}
	return "minecraft:unknown"
}

var legacyNames = map[byte]string{
	0: "air", 1: "stone", 2: "grass", 3: "dirt", 4: "cobblestone", 5: "planks",
	6: "sapling", 7: "bedrock", 8: "flowing_water", 9: "water", 10: "flowing_lava",
	11: "lava", 12: "sand", 13: "gravel", 14: "gold_ore", 15: "iron_ore",
	16: "coal_ore", 17: "log", 18: "leaves", 19: "sponge", 20: "glass",
	21: "lapis_ore", 22: "lapis_block", 24: "sandstone", 26: "bed",
	30: "web", 31: "tallgrass", 32: "deadbush", 35: "wool", 37: "yellow_flower",
	38: "red_flower", 39: "brown_mushroom", 40: "red_mushroom", 41: "gold_block",
	42: "iron_block", 43: "double_stone_slab", 44: "stone_slab", 45: "brick_block",
	46: "tnt", 47: "bookshelf", 48: "mossy_cobblestone", 49: "obsidian", 50: "torch",
	51: "fire", 52: "mob_spawner", 53: "oak_stairs", 54: "chest", 56: "diamond_ore",
	57: "diamond_block", 58: "crafting_table", 59: "wheat", 60: "farmland",
	61: "furnace", 64: "wooden_door", 65: "ladder", 66: "rail", 67: "stone_stairs",
	73: "redstone_ore", 78: "snow_layer", 79: "ice", 80: "snow", 81: "cactus",
	82: "clay", 83: "reeds", 85: "fence", 86: "pumpkin", 87: "netherrack",
	88: "soul_sand", 89: "glowstone", 91: "lit_pumpkin", 98: "stonebrick",
	99: "brown_mushroom_block", 100: "red_mushroom_block", 102: "glass_pane",
	103: "melon_block", 106: "vine", 110: "mycelium", 111: "waterlily",
	112: "nether_brick", 121: "end_stone", 129: "emerald_ore", 159: "stained_hardened_clay",
	161: "leaves2", 162: "log2", 172: "hardened_clay", 174: "packed_ice",
	243: "podzol",
}
