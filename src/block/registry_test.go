package block

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/nbt"
	"bedrockdb/src/subchunk"
)

func blockWith(t *testing.T, name string, version int32, states ...string) subchunk.Block {
	t.Helper()
	b := subchunk.NewBlock(name, version)
	for i := 0; i+1 < len(states); i += 2 {
		require.NoError(t, b.States.Append(states[i], nbt.String(states[i+1])))
	}
	return b
}

func TestPackVersion(t *testing.T) {
	v := PackVersion(1, 20, 50, 1)
	assert.Equal(t, int32(18100737), v)
	assert.Equal(t, "1.20.50.1", VersionString(v))
	assert.Less(t, PackVersion(1, 19, 80, 0), v1_20_50)
}

func TestResolvePlainName(t *testing.T) {
	r := NewRegistry()
	got := r.Resolve(blockWith(t, "minecraft:deepslate", v1_21_0, "pillar_axis", "y"))
	assert.Equal(t, "minecraft:deepslate", got.Name)
	assert.True(t, got.Known())
	assert.False(t, got.Transparent())
}

func TestResolveUnknown(t *testing.T) {
	got := NewRegistry().Resolve(blockWith(t, "somemod:widget", 0))
	assert.Equal(t, Unknown, got)
	assert.False(t, got.Known())
}

func TestResolveAliases(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name    string
		version int32
		want    string
	}{
		{"minecraft:concretepowder", v1_20_0, "minecraft:concrete_powder"},
		{"minecraft:invisibleBedrock", 0, "minecraft:invisible_bedrock"},
		{"minecraft:sealantern", 0, "minecraft:sea_lantern"},
		{"minecraft:grass", PackVersion(1, 20, 60, 0), "minecraft:grass_block"},
		{"minecraft:grass", v1_21_0, "minecraft:short_grass"},
		{"minecraft:grass_path", 0, "minecraft:dirt_path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(blockWith(t, tt.name, tt.version)).Name, "%s@%s", tt.name, VersionString(tt.version))
	}
}

func TestResolveStateRules(t *testing.T) {
	r := NewRegistry()
	old := PackVersion(1, 18, 10, 4)
	tests := []struct {
		block subchunk.Block
		want  string
	}{
		{blockWith(t, "minecraft:stone", old, "stone_type", "granite"), "minecraft:granite"},
		{blockWith(t, "minecraft:stone", old, "stone_type", "andesite_smooth"), "minecraft:polished_andesite"},
		{blockWith(t, "minecraft:stone", old), "minecraft:stone"},
		{blockWith(t, "minecraft:stone", old, "stone_type", "bogus"), "minecraft:stone"},
		{blockWith(t, "minecraft:dirt", old, "dirt_type", "coarse"), "minecraft:coarse_dirt"},
		{blockWith(t, "minecraft:stonebrick", old, "stone_brick_type", "mossy"), "minecraft:mossy_stone_bricks"},
		{blockWith(t, "minecraft:monster_egg", old, "monster_egg_stone_type", "cobblestone"), "minecraft:infested_cobblestone"},
		{blockWith(t, "minecraft:planks", old, "wood_type", "dark_oak"), "minecraft:dark_oak_planks"},
		{blockWith(t, "minecraft:log2", old, "new_log_type", "dark_oak"), "minecraft:dark_oak_log"},
		{blockWith(t, "minecraft:wool", old, "color", "silver"), "minecraft:light_gray_wool"},
		{blockWith(t, "minecraft:stained_glass", old, "color", "blue"), "minecraft:blue_stained_glass"},
		{blockWith(t, "minecraft:coral_block", old, "coral_color", "pink"), "minecraft:brain_coral_block"},
		{blockWith(t, "minecraft:stained_hardened_clay", old, "color", "red"), "minecraft:red_terracotta"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(tt.block).Name, tt.block.String())
	}
}

func TestStateRuleBoundedByVersion(t *testing.T) {
	r := NewRegistry()
	b := blockWith(t, "minecraft:stone", v1_20_50, "stone_type", "granite")
	assert.Equal(t, "minecraft:stone", r.Resolve(b).Name)

	b.Version = v1_20_50 - 1
	assert.Equal(t, "minecraft:granite", r.Resolve(b).Name)
}

func TestTypeFlags(t *testing.T) {
	r := NewRegistry()
	for name, want := range map[string][2]bool{
		"minecraft:air":               {true, false},
		"minecraft:water":             {true, true},
		"minecraft:seagrass":          {true, true},
		"minecraft:oak_leaves":        {true, false},
		"minecraft:glass":             {true, false},
		"minecraft:red_stained_glass": {true, false},
		"minecraft:white_carpet":      {true, false},
		"minecraft:white_wool":        {false, false},
		"minecraft:lava":              {false, false},
	} {
		typ, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want[0], typ.Transparent(), name)
		assert.Equal(t, want[1], typ.Water(), name)
	}
	_, ok := r.Lookup("minecraft:widget")
	assert.False(t, ok)
	assert.Greater(t, r.Len(), 300)

	names := r.Names()
	assert.Len(t, names, r.Len())
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "minecraft:water")
}

func TestDefaultIsShared(t *testing.T) {
	var wg sync.WaitGroup
	regs := make([]*Registry, 8)
	for i := range regs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			regs[i] = Default()
			_ = regs[i].Resolve(subchunk.NewBlock("minecraft:stone", 0))
		}(i)
	}
	wg.Wait()
	for _, r := range regs {
		assert.Same(t, regs[0], r)
	}
	assert.Equal(t, "minecraft:stone", Resolve(subchunk.NewBlock("minecraft:stone", 0)).Name)
}
