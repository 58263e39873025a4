package format

import (
	"io"

	"bedrockdb/src/nbt"
	"bedrockdb/src/world"
)

// ProgressCallback 定义进度回调函数类型
type ProgressCallback func(current, total int, message string)

// Dumper 将解码后的世界数据写成文本格式
type Dumper interface {
	// DumpChunk 输出区块的全部记录
	DumpChunk(w io.Writer, c *world.Chunk) error
	// DumpTag 输出一个带名称的NBT标签
	DumpTag(w io.Writer, nt nbt.NamedTag) error
	GetFormatName() string
	GetExtension() string
}
