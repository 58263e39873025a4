package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bedrockdb/format"
	"bedrockdb/src/coord"
	"bedrockdb/src/world"
)

// DefaultPath 默认配置文件
const DefaultPath = "config.json"

// General 通用设置
type General struct {
	Language        string `json:"language"`
	OutputDirectory string `json:"output_directory"`
}

// UI 终端输出设置
type UI struct {
	ColoredOutput bool `json:"colored_output"`
	ProgressBar   bool `json:"progress_bar"`
}

// World 默认打开的世界
type World struct {
	Path      string `json:"path"`
	Dimension string `json:"dimension"`
	ReadOnly  bool   `json:"read_only"`
}

// Export 导出设置
type Export struct {
	Format      string `json:"format"`
	Compression string `json:"compression"`
	Workers     int    `json:"workers"`
}

// Config 应用配置
type Config struct {
	General General `json:"general"`
	UI      UI      `json:"ui"`
	World   World   `json:"world"`
	Export  Export  `json:"export"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		General: General{Language: "zh_CN", OutputDirectory: "output"},
		UI:      UI{ColoredOutput: true, ProgressBar: true},
		World:   World{Dimension: coord.Overworld.String(), ReadOnly: true},
		Export:  Export{Format: "json", Compression: "none", Workers: 4},
	}
}

// LoadConfig 从文件加载配置，文件中缺失的字段保留默认值；文件不存在时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", configPath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", configPath, err)
	}
	return config, nil
}

// SaveConfig 保存配置到文件
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(configPath, append(data, '\n'), 0o644)
}

// Validate 检查取值是否合法
func (c *Config) Validate() error {
	if _, err := coord.ParseDimension(c.World.Dimension); err != nil {
		return fmt.Errorf("world.dimension: %w", err)
	}
	if _, err := world.ParseCompression(c.Export.Compression); err != nil {
		return fmt.Errorf("export.compression: %w", err)
	}
	if !format.NewDumperManager().Has(c.Export.Format) {
		return fmt.Errorf("export.format: 不支持的格式 %q", c.Export.Format)
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("export.workers: 至少为 1，当前为 %d", c.Export.Workers)
	}
	return nil
}

// Dimension 解析后的默认维度
func (c *Config) Dimension() coord.Dimension {
	d, err := coord.ParseDimension(c.World.Dimension)
	if err != nil {
		return coord.Overworld
	}
	return d
}

// Compression 解析后的导出压缩算法
func (c *Config) Compression() world.Compression {
	comp, err := world.ParseCompression(c.Export.Compression)
	if err != nil {
		return world.CompressionNone
	}
	return comp
}
