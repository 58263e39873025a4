package format

import (
	"fmt"
	"sort"
)

// DumperManager 输出格式管理器
type DumperManager struct {
	dumpers map[string]Dumper
}

// NewDumperManager 创建注册了内置格式的管理器
func NewDumperManager() *DumperManager {
	manager := &DumperManager{
		dumpers: make(map[string]Dumper),
	}

	manager.RegisterDumper(NewJSONDumper(true))
	manager.RegisterDumper(NewSNBTDumper())
	manager.RegisterDumper(NewMCStructureDumper())

	return manager
}

// RegisterDumper 按格式名称注册输出器，同名时覆盖
func (dm *DumperManager) RegisterDumper(d Dumper) {
	dm.dumpers[d.GetFormatName()] = d
}

// GetDumper 获取指定格式的输出器
func (dm *DumperManager) GetDumper(formatName string) (Dumper, error) {
	d, exists := dm.dumpers[formatName]
	if !exists {
		return nil, fmt.Errorf("不支持的格式: %s", formatName)
	}
	return d, nil
}

// Has 是否注册了该格式
func (dm *DumperManager) Has(formatName string) bool {
	_, ok := dm.dumpers[formatName]
	return ok
}

// GetAvailableFormats 按名称排序返回所有可用格式
func (dm *DumperManager) GetAvailableFormats() []string {
	formats := make([]string, 0, len(dm.dumpers))
	for formatName := range dm.dumpers {
		formats = append(formats, formatName)
	}
	sort.Strings(formats)
	return formats
}
