package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(t.TempDir())
	require.Nil(t, err)

	assert.Equal(t, "", config.Output)
	assert.Equal(t, "generic", config.CPU)
	assert.Equal(t, "", config.Features)
	assert.Equal(t, "pic", config.RelocModel)
	assert.Equal(t, "llc", config.Emitter)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configData := `
[build]
output = "out.o"
cpu = "skylake"
features = "+avx2"
reloc-model = "static"
emitter = "llc-15"
`
	require.Nil(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(configData), 0644))

	config, err := LoadConfig(dir)
	require.Nil(t, err)

	assert.Equal(t, "out.o", config.Output)
	assert.Equal(t, "skylake", config.CPU)
	assert.Equal(t, "+avx2", config.Features)
	assert.Equal(t, "static", config.RelocModel)
	assert.Equal(t, "llc-15", config.Emitter)
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[build]\ncpu = \"znver3\"\n"), 0644))

	config, err := LoadConfig(dir)
	require.Nil(t, err)

	// unset keys keep their defaults
	assert.Equal(t, "znver3", config.CPU)
	assert.Equal(t, "pic", config.RelocModel)
	assert.Equal(t, "llc", config.Emitter)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("not [valid toml"), 0644))

	_, err := LoadConfig(dir)
	assert.NotNil(t, err)
}
