package world

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression 导出数据使用的压缩算法
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionFlate
	CompressionZlib
	CompressionGzip
	CompressionZstd
	CompressionSnappy
	CompressionLZ4
)

var compressionNames = [...]string{
	CompressionNone:   "none",
	CompressionFlate:  "flate",
	CompressionZlib:   "zlib",
	CompressionGzip:   "gzip",
	CompressionZstd:   "zstd",
	CompressionSnappy: "snappy",
	CompressionLZ4:    "lz4",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("compression(%d)", byte(c))
}

// Extension 压缩文件的扩展名，不压缩时为空
func (c Compression) Extension() string {
	switch c {
	case CompressionNone:
		return ""
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	}
	return "." + c.String()
}

// ParseCompression 按名称解析压缩算法，空字符串视为 none
func ParseCompression(s string) (Compression, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "raw" {
		return CompressionNone, nil
	}
	if s == "deflate" {
		return CompressionFlate, nil
	}
	for i, name := range compressionNames {
		if name == s {
			return Compression(i), nil
		}
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// Compress 使用指定算法压缩数据
func Compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionSnappy:
		return snappy.Encode(nil, data), nil
	case CompressionLZ4:
		return compressLZ4(data)
	case CompressionFlate:
		w, err = flate.NewWriter(&buf, flate.DefaultCompression)
	case CompressionZlib:
		w = zlib.NewWriter(&buf)
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		w, err = zstd.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("compress: unsupported %s", c)
	}
	if err != nil {
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	return buf.Bytes(), nil
}

// Decompress 使用指定算法解压数据
func Decompress(c Compression, data []byte) ([]byte, error) {
	var r io.Reader
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress snappy: %w", err)
		}
		return out, nil
	case CompressionLZ4:
		return decompressLZ4(data)
	case CompressionFlate:
		fr := flate.NewReader(bytes.NewReader(data))
		defer fr.Close()
		r = fr
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompress zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompress gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompress zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("decompress: unsupported %s", c)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", c, err)
	}
	return out, nil
}

// lz4 块的存储方式
const (
	lz4Stored     byte = 0
	lz4Compressed byte = 1
)

// compressLZ4 格式：[4字节原始长度][1字节存储方式][数据]；无法压缩时原样存储
func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, 5+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))
	n, err := lz4.CompressBlock(data, dst[5:], nil)
	if err != nil {
		return nil, fmt.Errorf("compress lz4: %w", err)
	}
	if n == 0 {
		dst[4] = lz4Stored
		return append(dst[:5], data...), nil
	}
	dst[4] = lz4Compressed
	return dst[:5+n], nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("decompress lz4: missing header")
	}
	size := int(binary.LittleEndian.Uint32(data))
	mode, body := data[4], data[5:]
	switch mode {
	case lz4Stored:
		if len(body) != size {
			return nil, fmt.Errorf("decompress lz4: stored block is %d bytes, expected %d", len(body), size)
		}
		return append([]byte(nil), body...), nil
	case lz4Compressed:
	default:
		return nil, fmt.Errorf("decompress lz4: unknown block mode %d", mode)
	}
	if size > len(body)*255+16 {
		return nil, fmt.Errorf("decompress lz4: size %d too large for %d byte block", size, len(body))
	}
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(body, out)
	if err != nil {
		return nil, fmt.Errorf("decompress lz4: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("decompress lz4: got %d bytes, expected %d", n, size)
	}
	return out, nil
}
