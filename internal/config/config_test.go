package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(p, []byte(`
exclude: "*.log,node_modules/**"
max_bytes: 1048576
workers: 4
fail_on: high
no_color: true
`), 0o644))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Exclude)
	assert.Equal(t, "*.log,node_modules/**", *cfg.Exclude)
	require.NotNil(t, cfg.MaxBytes)
	assert.Equal(t, int64(1<<20), *cfg.MaxBytes)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 4, *cfg.Workers)
	require.NotNil(t, cfg.FailOn)
	assert.Equal(t, "high", *cfg.FailOn)
	require.NotNil(t, cfg.NoColor)
	assert.True(t, *cfg.NoColor)
	assert.Nil(t, cfg.Patterns)
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".piiscan.yml"), []byte("workers: 2\n"), 0o644))

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 2, *cfg.Workers)

	_, err = LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(p, []byte("workers: [oops"), 0o644))
	_, err := LoadFile(p)
	assert.Error(t, err)
}
