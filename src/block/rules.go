package block

// addAliases 登记改名的方块
func (r *Registry) addAliases() {
	r.alias("concretepowder", "concrete_powder", 0)
	r.alias("invisibleBedrock", "invisible_bedrock", 0)
	r.alias("invisiblebedrock", "invisible_bedrock", 0)
	r.alias("movingBlock", "moving_block", 0)
	r.alias("movingblock", "moving_block", 0)
	r.alias("pistonArmCollision", "piston_arm_collision", 0)
	r.alias("pistonarmcollision", "piston_arm_collision", 0)
	r.alias("stickyPistonArmCollision", "sticky_piston_arm_collision", 0)
	r.alias("stickypistonarmcollision", "sticky_piston_arm_collision", 0)
	r.alias("seaLantern", "sea_lantern", 0)
	r.alias("sealantern", "sea_lantern", 0)
	r.alias("grass_path", "dirt_path", 0)
	r.alias("stonebrick", "stone_bricks", 0)
	r.alias("monster_egg", "infested_stone", 0)
	r.alias("yellow_flower", "dandelion", 0)
	r.alias("red_flower", "poppy", 0)
	r.alias("double_plant", "sunflower", 0)
	r.alias("tallgrass", "short_grass", 0)
	r.alias("lit_pumpkin", "pumpkin", 0)
	r.alias("cave_vines_head_berries", "cave_vines_head_with_berries", 0)
	r.alias("cave_vines_body_berries", "cave_vines_body_with_berries", 0)
	// 1.20.70 之前 grass 指草方块
	r.alias("grass", "grass_block", v1_20_70)
	r.alias("grass", "short_grass", 0)
}

// addRules 登记依赖状态区分的方块，before 为该状态被拆分为独立方块的版本
func (r *Registry) addRules() {
	r.rule("stone", "stone_type", "stone", v1_20_50, map[string]string{
		"stone": "stone", "granite": "granite", "diorite": "diorite", "andesite": "andesite",
		"granite_smooth": "polished_granite", "diorite_smooth": "polished_diorite", "andesite_smooth": "polished_andesite",
	})
	r.rule("dirt", "dirt_type", "dirt", v1_20_50, map[string]string{"normal": "dirt", "coarse": "coarse_dirt"})
	r.rule("sand", "sand_type", "sand", v1_20_50, map[string]string{"normal": "sand", "red": "red_sand"})
	r.rule("stone_bricks", "stone_brick_type", "stone_bricks", v1_20_50, map[string]string{
		"default": "stone_bricks", "mossy": "mossy_stone_bricks", "cracked": "cracked_stone_bricks",
		"chiseled": "chiseled_stone_bricks", "smooth": "stone_bricks",
	})
	r.rule("infested_stone", "monster_egg_stone_type", "infested_stone", v1_20_50, map[string]string{
		"stone": "infested_stone", "cobblestone": "infested_cobblestone", "stone_brick": "infested_stone_bricks",
		"mossy_stone_brick": "infested_mossy_stone_bricks", "cracked_stone_brick": "infested_cracked_stone_bricks",
		"chiseled_stone_brick": "infested_chiseled_stone_bricks",
	})
	r.rule("prismarine", "prismarine_block_type", "prismarine", v1_20_50, map[string]string{
		"default": "prismarine", "dark": "dark_prismarine", "bricks": "prismarine_bricks",
	})
	r.rule("quartz_block", "chisel_type", "quartz_block", v1_20_50, map[string]string{
		"default": "quartz_block", "chiseled": "chiseled_quartz_block", "lines": "quartz_pillar", "smooth": "smooth_quartz",
	})
	r.rule("purpur_block", "chisel_type", "purpur_block", v1_20_50, map[string]string{
		"default": "purpur_block", "lines": "purpur_pillar",
	})
	r.rule("sandstone", "sand_stone_type", "sandstone", v1_20_50, map[string]string{
		"default": "sandstone", "heiroglyphs": "chiseled_sandstone", "cut": "cut_sandstone", "smooth": "smooth_sandstone",
	})
	r.rule("red_sandstone", "sand_stone_type", "red_sandstone", v1_20_50, map[string]string{
		"default": "red_sandstone", "heiroglyphs": "chiseled_red_sandstone", "cut": "cut_red_sandstone", "smooth": "smooth_red_sandstone",
	})

	woods := []string{"oak", "spruce", "birch", "jungle", "acacia", "dark_oak"}
	planks := make(map[string]string, len(woods))
	logs := make(map[string]string, 4)
	leaves := make(map[string]string, 4)
	saplings := make(map[string]string, len(woods))
	for i, w := range woods {
		planks[w] = w + "_planks"
		saplings[w] = w + "_sapling"
		if i < 4 {
			logs[w] = w + "_log"
			leaves[w] = w + "_leaves"
		}
	}
	r.rule("planks", "wood_type", "oak_planks", v1_20_50, planks)
	r.rule("sapling", "sapling_type", "oak_sapling", v1_20_50, saplings)
	r.rule("log", "old_log_type", "oak_log", v1_20_0, logs)
	r.rule("log2", "new_log_type", "acacia_log", v1_20_0, map[string]string{"acacia": "acacia_log", "dark_oak": "dark_oak_log"})
	r.rule("leaves", "old_leaf_type", "oak_leaves", v1_20_70, leaves)
	r.rule("leaves2", "new_leaf_type", "acacia_leaves", v1_20_70, map[string]string{"acacia": "acacia_leaves", "dark_oak": "dark_oak_leaves"})
	woodBlocks := make(map[string]string, len(woods))
	for _, w := range woods {
		woodBlocks[w] = w + "_wood"
	}
	r.rule("wood", "wood_type", "oak_wood", v1_20_50, woodBlocks)

	for _, base := range []string{"wool", "carpet", "concrete", "concrete_powder", "shulker_box", "stained_glass", "stained_glass_pane"} {
		values := make(map[string]string, len(colors))
		for _, c := range colors {
			values[c] = c + "_" + base
		}
		values["silver"] = "light_gray_" + base
		before := v1_20_50
		if base == "wool" || base == "carpet" {
			before = v1_19_70
		}
		r.rule(base, "color", base, before, values)
	}
	terracotta := make(map[string]string, len(colors))
	for _, c := range colors {
		terracotta[c] = c + "_terracotta"
	}
	terracotta["silver"] = "light_gray_terracotta"
	r.rule("stained_hardened_clay", "color", "stained_hardened_clay", v1_21_0, terracotta)

	coralBlocks := make(map[string]string, len(coralColors))
	coralFans := make(map[string]string, len(coralColors))
	deadFans := make(map[string]string, len(coralColors))
	for color, kind := range coralColors {
		coralBlocks[color] = kind + "_coral_block"
		coralFans[color] = kind + "_coral_fan"
		deadFans[color] = "dead_" + kind + "_coral_fan"
	}
	r.rule("coral_block", "coral_color", "coral_block", v1_21_0, coralBlocks)
	r.rule("coral_fan", "coral_color", "coral_fan", v1_21_0, coralFans)
	r.rule("coral_fan_dead", "coral_color", "coral_fan_dead", v1_21_0, deadFans)
}
