package block

import "strings"

// Type 规范化后的方块类型
type Type struct {
	Name        string
	transparent bool
	water       bool
}

// Unknown 注册表中找不到时返回的类型
var Unknown = Type{Name: "minecraft:unknown"}

// Known 是否为注册表中的类型
func (t Type) Known() bool {
	return t.Name != Unknown.Name && t.Name != ""
}

// Transparent 是否透光（空气、玻璃、植物等）
func (t Type) Transparent() bool {
	return t.transparent
}

// Water 是否为水或自带水的方块
func (t Type) Water() bool {
	return t.water
}

// ShortName 去掉命名空间的名称
func (t Type) ShortName() string {
	return strings.TrimPrefix(t.Name, "minecraft:")
}

func (t Type) String() string {
	return t.Name
}

// 注册表中的方块名称，按属性分组
var (
	opaqueNames = []string{
		"stone", "granite", "polished_granite", "diorite", "polished_diorite", "andesite", "polished_andesite",
		"deepslate", "cobbled_deepslate", "tuff", "calcite", "dripstone_block", "bedrock",
		"grass_block", "dirt", "coarse_dirt", "podzol", "mycelium", "dirt_path", "farmland", "mud", "clay",
		"sand", "red_sand", "gravel", "sandstone", "chiseled_sandstone", "cut_sandstone", "smooth_sandstone",
		"red_sandstone", "chiseled_red_sandstone", "cut_red_sandstone", "smooth_red_sandstone",
		"cobblestone", "mossy_cobblestone", "stone_bricks", "mossy_stone_bricks", "cracked_stone_bricks",
		"chiseled_stone_bricks", "bricks", "prismarine", "dark_prismarine", "prismarine_bricks",
		"quartz_block", "chiseled_quartz_block", "quartz_pillar", "smooth_quartz",
		"purpur_block", "purpur_pillar", "end_stone", "netherrack", "soul_sand", "soul_soil", "basalt",
		"blackstone", "obsidian", "crying_obsidian", "glowstone", "magma", "snow", "packed_ice", "blue_ice",
		"oak_planks", "spruce_planks", "birch_planks", "jungle_planks", "acacia_planks", "dark_oak_planks",
		"mangrove_planks", "cherry_planks", "bamboo_planks", "crimson_planks", "warped_planks",
		"oak_log", "spruce_log", "birch_log", "jungle_log", "acacia_log", "dark_oak_log", "mangrove_log", "cherry_log",
		"oak_wood", "spruce_wood", "birch_wood", "jungle_wood", "acacia_wood", "dark_oak_wood",
		"stripped_oak_wood", "stripped_spruce_wood", "stripped_birch_wood", "stripped_jungle_wood",
		"stripped_acacia_wood", "stripped_dark_oak_wood",
		"coal_ore", "iron_ore", "gold_ore", "diamond_ore", "emerald_ore", "lapis_ore", "redstone_ore", "copper_ore",
		"deepslate_coal_ore", "deepslate_iron_ore", "deepslate_diamond_ore", "deepslate_lapis_ore",
		"iron_block", "gold_block", "diamond_block", "emerald_block", "lapis_block", "copper_block",
		"infested_stone", "infested_cobblestone", "infested_stone_bricks", "infested_mossy_stone_bricks",
		"infested_cracked_stone_bricks", "infested_chiseled_stone_bricks", "infested_deepslate",
		"hardened_clay", "crafting_table", "furnace", "chest", "bookshelf", "tnt", "mob_spawner", "sponge",
		"pumpkin", "melon_block", "hay_block", "bone_block", "sea_lantern", "moving_block",
		"piston_arm_collision", "sticky_piston_arm_collision", "invisible_bedrock",
		"ochre_froglight", "verdant_froglight", "pearlescent_froglight", "bee_nest",
	}

	transparentNames = []string{
		"air", "cave_air", "void_air", "glass", "glass_pane", "tinted_glass", "barrier", "light_block",
		"short_grass", "tall_grass", "fern", "large_fern", "deadbush", "vine", "web", "torch", "fire", "soul_fire",
		"dandelion", "poppy", "blue_orchid", "allium", "azure_bluet", "red_tulip", "orange_tulip", "white_tulip",
		"pink_tulip", "oxeye_daisy", "cornflower", "lily_of_the_valley", "sunflower", "lilac", "rose_bush", "peony",
		"oak_sapling", "spruce_sapling", "birch_sapling", "jungle_sapling", "acacia_sapling", "dark_oak_sapling",
		"oak_leaves", "spruce_leaves", "birch_leaves", "jungle_leaves", "acacia_leaves", "dark_oak_leaves",
		"mangrove_leaves", "cherry_leaves", "azalea_leaves",
		"brown_mushroom", "red_mushroom", "wheat", "carrots", "potatoes", "beetroot", "reeds", "cactus",
		"snow_layer", "ice", "rail", "ladder", "waterlily", "small_dripleaf_block", "big_dripleaf",
		"cave_vines", "cave_vines_head_with_berries", "cave_vines_body_with_berries", "sweet_berry_bush",
		"frog_spawn", "turtle_egg", "sniffer_egg", "torchflower_crop", "pitcher_crop",
		"pumpkin_stem", "melon_stem", "cocoa", "wooden_door", "oak_door", "iron_bars",
	}

	waterNames = []string{
		"water", "flowing_water", "seagrass", "kelp", "bubble_column",
		"tube_coral", "brain_coral", "bubble_coral", "fire_coral", "horn_coral",
	}

	solidWithColorNames = []string{"wool", "carpet", "concrete", "concrete_powder", "stained_glass",
		"stained_glass_pane", "stained_hardened_clay", "shulker_box", "coral_block", "coral_fan", "coral_fan_dead"}

	colors = []string{"white", "orange", "magenta", "light_blue", "yellow", "lime", "pink", "gray",
		"light_gray", "cyan", "purple", "blue", "brown", "green", "red", "black"}

	coralColors = map[string]string{"blue": "tube", "pink": "brain", "purple": "bubble", "red": "fire", "yellow": "horn"}

	otherNames = []string{"lava", "flowing_lava"}
)
