package message

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Messages 国际化消息
type Messages struct {
	LangCode string            `json:"lang_code"`
	Messages map[string]string `json:"messages"`
}

var builtin = map[string]map[string]string{
	"zh_CN": {
		"welcome":             "bedrockdb 基岩版世界查看工具",
		"open_world":          "打开世界",
		"world_not_found":     "未找到世界目录",
		"chunk_not_found":     "区块不存在",
		"scan_start":          "开始扫描记录...",
		"scan_done":           "扫描完成",
		"export_start":        "开始导出...",
		"export_done":         "导出完成",
		"decode_failed":       "解码失败",
		"chunk_export_failed": "区块导出出错",
		"export_chunk_errors": "出错的区块数",
		"record_failed":       "记录解码失败",
		"config_saved":        "配置已保存",
		"error":               "错误",
		"success":             "成功",
	},
	"en_US": {
		"welcome":             "bedrockdb Bedrock world inspector",
		"open_world":          "Opening world",
		"world_not_found":     "World directory not found",
		"chunk_not_found":     "Chunk not found",
		"scan_start":          "Scanning records...",
		"scan_done":           "Scan finished",
		"export_start":        "Exporting...",
		"export_done":         "Export finished",
		"decode_failed":       "Decode failed",
		"chunk_export_failed": "Chunk export error",
		"export_chunk_errors": "Chunks with errors",
		"record_failed":       "Record decode failed",
		"config_saved":        "Configuration saved",
		"error":               "Error",
		"success":             "Success",
	},
}

// LoadMessages 加载指定语言的消息。内置语言之外回退到 zh_CN；
// dir 中存在 <langCode>.json 时用其中的条目覆盖。
func LoadMessages(dir, langCode string) (*Messages, error) {
	base, ok := builtin[langCode]
	if !ok {
		base = builtin["zh_CN"]
	}
	msg := &Messages{
		LangCode: langCode,
		Messages: make(map[string]string, len(base)),
	}
	for k, v := range base {
		msg.Messages[k] = v
	}

	if dir == "" {
		return msg, nil
	}
	filePath := filepath.Join(dir, langCode+".json")
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return msg, nil
	}
	if err != nil {
		return nil, err
	}
	var fileMsg map[string]string
	if err := json.Unmarshal(data, &fileMsg); err != nil {
		return nil, fmt.Errorf("解析消息文件 %s 失败: %w", filePath, err)
	}
	for k, v := range fileMsg {
		msg.Messages[k] = v
	}
	return msg, nil
}

// Get 获取指定键的消息
func (m *Messages) Get(key string) string {
	if msg, exists := m.Messages[key]; exists {
		return msg
	}
	return key // 返回键名作为默认值
}
