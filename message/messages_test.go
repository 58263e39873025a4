package message

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	m, err := LoadMessages("", "en_US")
	require.NoError(t, err)
	assert.Equal(t, "Chunk not found", m.Get("chunk_not_found"))
	assert.Equal(t, "missing_key", m.Get("missing_key"))

	m, err = LoadMessages("", "fr_FR")
	require.NoError(t, err)
	assert.Equal(t, "区块不存在", m.Get("chunk_not_found"))
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_US.json"), []byte(`{"scan_done":"Done!"}`), 0o644))

	m, err := LoadMessages(dir, "en_US")
	require.NoError(t, err)
	assert.Equal(t, "Done!", m.Get("scan_done"))
	assert.Equal(t, "Scanning records...", m.Get("scan_start"))

	// 覆盖不影响内置表
	other, err := LoadMessages("", "en_US")
	require.NoError(t, err)
	assert.Equal(t, "Scan finished", other.Get("scan_done"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zh_CN.json"), []byte(`{`), 0o644))
	_, err = LoadMessages(dir, "zh_CN")
	assert.Error(t, err)
}
