package block

import (
	"sort"
	"strings"
	"sync"

	"bedrockdb/src/subchunk"
)

// alias 旧名称到新名称的映射，before 非 0 时只对版本小于 before 的方块生效
type alias struct {
	to     string
	before int32
}

// stateRule 用状态值区分同名方块，before 非 0 时只对版本小于 before 的方块生效
type stateRule struct {
	state    string
	values   map[string]string
	fallback string
	before   int32
}

// Registry 方块类型注册表，构建完成后只读，可并发使用
type Registry struct {
	types   map[string]Type
	aliases map[string][]alias
	rules   map[string][]stateRule
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default 返回内置注册表，首次调用时构建
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry 根据内置表构建注册表
func NewRegistry() *Registry {
	r := &Registry{
		types:   make(map[string]Type),
		aliases: make(map[string][]alias),
		rules:   make(map[string][]stateRule),
	}
	for _, n := range opaqueNames {
		r.add(n, false, false)
	}
	for _, n := range transparentNames {
		r.add(n, true, false)
	}
	for _, n := range waterNames {
		r.add(n, true, true)
	}
	for _, n := range otherNames {
		r.add(n, false, false)
	}
	for _, c := range colors {
		for _, n := range []string{"wool", "carpet", "concrete", "concrete_powder", "terracotta", "shulker_box"} {
			r.add(c+"_"+n, n == "carpet", false)
		}
		r.add(c+"_stained_glass", true, false)
		r.add(c+"_stained_glass_pane", true, false)
	}
	for _, n := range solidWithColorNames {
		r.add(n, strings.Contains(n, "glass") || n == "carpet", false)
	}
	for _, c := range coralColors {
		r.add(c+"_coral_block", false, false)
		r.add("dead_"+c+"_coral_block", false, false)
		r.add(c+"_coral_fan", true, true)
		r.add("dead_"+c+"_coral_fan", true, false)
	}
	r.addAliases()
	r.addRules()
	return r
}

func (r *Registry) add(short string, transparent, water bool) {
	name := "minecraft:" + short
	r.types[name] = Type{Name: name, transparent: transparent, water: water}
}

func (r *Registry) alias(from, to string, before int32) {
	from, to = "minecraft:"+from, "minecraft:"+to
	r.aliases[from] = append(r.aliases[from], alias{to: to, before: before})
}

func (r *Registry) rule(name, state, fallback string, before int32, values map[string]string) {
	full := make(map[string]string, len(values))
	for k, v := range values {
		full[k] = "minecraft:" + v
	}
	name = "minecraft:" + name
	r.rules[name] = append(r.rules[name], stateRule{state: state, values: full, fallback: "minecraft:" + fallback, before: before})
}

func applies(before, version int32) bool {
	return before == 0 || version < before
}

// Resolve 将调色板方块映射为规范类型：先应用别名，再按状态规则区分，最后按名称查找。
// 查找失败时返回 Unknown。
func (r *Registry) Resolve(b subchunk.Block) Type {
	name := r.canonicalName(b.Name, b.Version)
	for _, rule := range r.rules[name] {
		if !applies(rule.before, b.Version) {
			continue
		}
		value, ok := b.State(rule.state)
		if !ok {
			name = rule.fallback
			break
		}
		if mapped, ok := rule.values[value]; ok {
			name = mapped
		} else {
			name = rule.fallback
		}
		break
	}
	if t, ok := r.types[name]; ok {
		return t
	}
	return Unknown
}

func (r *Registry) canonicalName(name string, version int32) string {
	for _, a := range r.aliases[name] {
		if applies(a.before, version) {
			return a.to
		}
	}
	return name
}

// Lookup 按规范名称查找类型
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Len 注册的类型数量
func (r *Registry) Len() int {
	return len(r.types)
}

// Names 按字典序返回全部规范名称
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve 使用内置注册表解析方块
func Resolve(b subchunk.Block) Type {
	return Default().Resolve(b)
}
