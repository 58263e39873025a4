package subchunk

import (
	"encoding/binary"
	"math/bits"
)

// Volume 子区块内的方块数
const Volume = 4096

var validBits = [...]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 8: true, 16: true}

// ValidBitsPerBlock 判断每方块位数是否为存储格式支持的取值
func ValidBitsPerBlock(bpb int) bool {
	return bpb >= 0 && bpb < len(validBits) && validBits[bpb]
}

// BitsFor 返回容纳 n 个调色板条目所需的最小合法位数，n 为 1 时为 0
func BitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	bpb := bits.Len(uint(n - 1))
	for !ValidBitsPerBlock(bpb) {
		bpb++
	}
	return bpb
}

// wordCount 打包 4096 个索引所需的 u32 个数
func wordCount(bpb int) int {
	if bpb == 0 {
		return 0
	}
	perWord := 32 / bpb
	return (Volume + perWord - 1) / perWord
}

// unpackIndices 从小端序 u32 数组中按低位优先解出索引
func unpackIndices(data []byte, bpb int, out *[Volume]uint16) {
	if bpb == 0 {
		*out = [Volume]uint16{}
		return
	}
	perWord := 32 / bpb
	mask := uint32(1)<<bpb - 1
	i := 0
	for w := 0; i < Volume; w++ {
		word := binary.LittleEndian.Uint32(data[w*4:])
		for j := 0; j < perWord && i < Volume; j++ {
			out[i] = uint16(word >> (j * bpb) & mask)
			i++
		}
	}
}

// appendIndices 将索引打包追加到 buf，最后一个字的填充位为 0
func appendIndices(buf []byte, bpb int, in *[Volume]uint16) []byte {
	if bpb == 0 {
		return buf
	}
	perWord := 32 / bpb
	for i := 0; i < Volume; i += perWord {
		var word uint32
		for j := 0; j < perWord && i+j < Volume; j++ {
			word |= uint32(in[i+j]) << (j * bpb)
		}
		buf = binary.LittleEndian.AppendUint32(buf, word)
	}
	return buf
}
