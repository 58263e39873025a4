package format

import (
	"encoding/json"
	"io"

	"bedrockdb/src/nbt"
	"bedrockdb/src/world"
)

// JSONDumper JSON格式输出器，复合标签保持原有的键顺序
type JSONDumper struct {
	indent bool
}

// NewJSONDumper 创建JSON输出器，indent 为 true 时缩进输出
func NewJSONDumper(indent bool) *JSONDumper {
	return &JSONDumper{indent: indent}
}

// GetFormatName 获取格式名称
func (j *JSONDumper) GetFormatName() string {
	return "json"
}

// GetExtension 获取文件扩展名
func (j *JSONDumper) GetExtension() string {
	return ".json"
}

func (j *JSONDumper) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// DumpChunk 输出区块
func (j *JSONDumper) DumpChunk(w io.Writer, c *world.Chunk) error {
	return j.encode(w, newChunkView(c))
}

// DumpTag 输出 {"name": ..., "type": ..., "value": ...}
func (j *JSONDumper) DumpTag(w io.Writer, nt nbt.NamedTag) error {
	return j.encode(w, struct {
		Name  string  `json:"name"`
		Type  string  `json:"type"`
		Value nbt.Tag `json:"value"`
	}{nt.Name, nt.Tag.Type().String(), nt.Tag})
}
