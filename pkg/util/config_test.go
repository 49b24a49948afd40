package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_loadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[demo]
rowCount = 16
layout = "dense"
field = "str"

[result]
path = "/tmp/out"

[debug]
printResult = true
maxPrint = 4
`
	err := os.WriteFile(filepath.Join(dir, "unionvec.toml"), []byte(content), 0644)
	require.NoError(t, err)

	cfg := &Config{}
	has, err := LoadConfigFile([]string{"nosuchdir", dir}, "unionvec.toml", cfg)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 16, cfg.Demo.RowCount)
	assert.Equal(t, "dense", cfg.Demo.Layout)
	assert.Equal(t, "str", cfg.Demo.Field)
	assert.Equal(t, "/tmp/out", cfg.Result.Path)
	assert.True(t, cfg.Debug.PrintResult)
	assert.Equal(t, 4, cfg.Debug.MaxPrint)
}

func Test_loadConfigFileMissing(t *testing.T) {
	cfg := &Config{}
	has, err := LoadConfigFile([]string{t.TempDir()}, "unionvec.toml", cfg)
	assert.NoError(t, err)
	assert.False(t, has)
}
