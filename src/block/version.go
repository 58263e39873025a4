package block

import "fmt"

// PackVersion 将 major.minor.patch.revision 打包为调色板中使用的 i32 方块版本
func PackVersion(major, minor, patch, revision uint8) int32 {
	return int32(major)<<24 | int32(minor)<<16 | int32(patch)<<8 | int32(revision)
}

// VersionString 将打包的方块版本还原为点分形式
func VersionString(v int32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

var (
	v1_19_70 = PackVersion(1, 19, 70, 0)
	v1_20_0  = PackVersion(1, 20, 0, 0)
	v1_20_50 = PackVersion(1, 20, 50, 0)
	v1_20_70 = PackVersion(1, 20, 70, 0)
	v1_21_0  = PackVersion(1, 21, 0, 0)
)
