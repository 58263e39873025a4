package nbt

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// ReadGzip 从gzip压缩的流中读取一个小端序NBT根标签
func ReadGzip(r io.Reader) (NamedTag, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return NamedTag{}, err
	}
	defer gzReader.Close()

	data, err := io.ReadAll(gzReader)
	if err != nil {
		return NamedTag{}, err
	}
	return Unmarshal(data)
}
