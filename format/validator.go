package format

import (
	"fmt"
	"sort"

	"bedrockdb/src/block"
	"bedrockdb/src/world"
)

// VerifyChunk 检查区块内容是否与其维度一致，返回是否通过以及发现的问题
func VerifyChunk(c *world.Chunk) (bool, []string) {
	var problems []string
	lo, hi := c.Dimension.SubChunkRange()

	for _, y := range c.SubChunkYs() {
		if !c.Dimension.ContainsSubChunk(y) {
			problems = append(problems, fmt.Sprintf("子区块 y=%d 超出 %s 的范围 [%d, %d]", y, c.Dimension, lo, hi))
		}
	}

	if c.Biomes != nil {
		if want := int(hi) - int(lo) + 1; len(c.Biomes.Sections) < want {
			problems = append(problems, fmt.Sprintf("生物群系分段数 %d 少于 %d", len(c.Biomes.Sections), want))
		}
	}

	for _, err := range c.Errors {
		problems = append(problems, fmt.Sprintf("记录解码失败: %v", err))
	}

	unknown := UnknownBlocks(c)
	if len(unknown) > 0 {
		problems = append(problems, fmt.Sprintf("无法识别的方块: %v", unknown))
	}

	for i, be := range compounds(c.BlockEntities) {
		if _, ok := be.String("id"); !ok {
			problems = append(problems, fmt.Sprintf("第 %d 个方块实体缺少 id", i))
		}
	}
	return len(problems) == 0, problems
}

// UnknownBlocks 返回区块调色板中解析为未知类型的方块名称，已排序去重
func UnknownBlocks(c *world.Chunk) []string {
	seen := make(map[string]bool)
	for _, s := range c.SubChunks {
		if s.Legacy != nil {
			continue
		}
		for _, l := range s.Layers {
			for _, b := range l.Palette {
				if !block.Resolve(b).Known() {
					seen[b.Name] = true
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
