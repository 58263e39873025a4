package world

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"time"

	"bedrockdb/src/errs"
	"bedrockdb/src/nbt"
)

// LevelDatHeaderSize level.dat 开头的存储版本与长度字段
const LevelDatHeaderSize = 8

// LevelDat level.dat 文件：存储版本与小端序NBT根复合标签
type LevelDat struct {
	StorageVersion int32
	Root           *nbt.Compound
}

// DecodeLevelDat 解析 level.dat 内容
func DecodeLevelDat(data []byte) (*LevelDat, error) {
	if len(data) < LevelDatHeaderSize {
		return nil, errs.Malformed(0, "level.dat header", LevelDatHeaderSize, len(data))
	}
	version := int32(binary.LittleEndian.Uint32(data))
	length := int(int32(binary.LittleEndian.Uint32(data[4:])))
	body := data[LevelDatHeaderSize:]
	if length < 0 || length > len(body) {
		return nil, errs.Malformed(4, "level.dat length", len(body), length)
	}
	nt, err := nbt.Unmarshal(body[:length])
	if err != nil {
		return nil, errs.Shift(err, LevelDatHeaderSize)
	}
	root, ok := nt.Tag.(*nbt.Compound)
	if !ok {
		return nil, errs.Malformed(LevelDatHeaderSize, "level.dat root", nbt.TagCompound, nt.Tag.Type())
	}
	return &LevelDat{StorageVersion: version, Root: root}, nil
}

// ReadLevelDat 读取 level.dat 文件
func ReadLevelDat(path string) (*LevelDat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ld, err := DecodeLevelDat(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ld, nil
}

// Encode 编码为 level.dat 内容
func (l *LevelDat) Encode() []byte {
	root := l.Root
	if root == nil {
		root = nbt.NewCompound()
	}
	buf := make([]byte, LevelDatHeaderSize, 1024)
	buf = nbt.AppendTag(buf, "", root)
	binary.LittleEndian.PutUint32(buf, uint32(l.StorageVersion))
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(buf)-LevelDatHeaderSize))
	return buf
}

// WriteFile 写入 level.dat 文件
func (l *LevelDat) WriteFile(path string) error {
	return os.WriteFile(path, l.Encode(), 0o644)
}

// LevelName 世界名称
func (l *LevelDat) LevelName() string {
	name, _ := l.Root.String("LevelName")
	return name
}

// GameType 游戏模式
func (l *LevelDat) GameType() string {
	v, ok := l.Root.Int("GameType")
	if !ok {
		return "unknown"
	}
	switch v {
	case 0:
		return "survival"
	case 1:
		return "creative"
	case 2:
		return "adventure"
	case 6:
		return "spectator"
	}
	return fmt.Sprintf("gametype(%d)", v)
}

// Difficulty 难度
func (l *LevelDat) Difficulty() string {
	v, ok := l.Root.Int("Difficulty")
	if !ok {
		return "unknown"
	}
	names := []string{"peaceful", "easy", "normal", "hard"}
	if v >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("difficulty(%d)", v)
}

// LastPlayed 上次游玩时间，缺失时为零值
func (l *LevelDat) LastPlayed() time.Time {
	v, ok := l.Root.Long("LastPlayed")
	if !ok {
		return time.Time{}
	}
	return time.Unix(v, 0)
}

// LastOpenedWithVersion 上次打开世界的游戏版本，如 1.21.2.2
func (l *LevelDat) LastOpenedWithVersion() string {
	list, ok := l.Root.List("lastOpenedWithVersion")
	if !ok || list.ElemType() != nbt.TagInt {
		return ""
	}
	parts := make([]string, 0, list.Len())
	list.Each(func(_ int, t nbt.Tag) bool {
		parts = append(parts, fmt.Sprint(int32(t.(nbt.Int))))
		return true
	})
	return strings.Join(parts, ".")
}

// Spawn 出生点方块坐标
func (l *LevelDat) Spawn() (x, y, z int32) {
	x, _ = l.Root.Int("SpawnX")
	y, _ = l.Root.Int("SpawnY")
	z, _ = l.Root.Int("SpawnZ")
	return x, y, z
}
