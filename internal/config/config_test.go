package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(context.Background(), afs.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	body := `
make:
  symbols: "!@#"
  growth: 2
  limit: 32
recover:
  key: mykey
  length: 24
  show: true
  encrypted: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))

	cfg, err := Load(context.Background(), afs.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "!@#", cfg.Make.Symbols)
	require.NotNil(t, cfg.Make.Growth)
	assert.Equal(t, 2, *cfg.Make.Growth)
	require.NotNil(t, cfg.Make.Limit)
	assert.Equal(t, 32, *cfg.Make.Limit)

	assert.Equal(t, "mykey", cfg.Recover.Key)
	require.NotNil(t, cfg.Recover.Length)
	assert.Equal(t, 24, *cfg.Recover.Length)
	require.NotNil(t, cfg.Recover.Show)
	assert.True(t, *cfg.Recover.Show)
	require.NotNil(t, cfg.Recover.Encrypted)
	assert.False(t, *cfg.Recover.Encrypted)
}

func TestLoadPartialConfigLeavesUnsetNil(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("recover:\n  length: 16\n"), 0o644))

	cfg, err := Load(context.Background(), afs.New(), dir)
	require.NoError(t, err)

	require.NotNil(t, cfg.Recover.Length)
	assert.Equal(t, 16, *cfg.Recover.Length)
	assert.Nil(t, cfg.Recover.Show)
	assert.Nil(t, cfg.Recover.Encrypted)
	assert.Nil(t, cfg.Make.Growth)
	assert.Empty(t, cfg.Recover.Key)
}

func TestLoadMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(":\tnot yaml ["), 0o644))

	_, err := Load(context.Background(), afs.New(), dir)
	assert.Error(t, err)
}
