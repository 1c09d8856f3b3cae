package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, name := range []string{"plain", "pad", "enc"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(m))
	}
	_, err := ParseMode("gzip")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModePlain, "email.txt"},
		{ModePadded, "email.pad"},
		{ModeEncrypted, "email.enc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName("email", tt.mode))
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	v := New(dir)
	ctx := context.Background()

	data := []byte("front-pad-secret-back-pad")
	require.NoError(t, v.Write(ctx, "email.pad", data))

	got, err := v.Read(ctx, "email.pad")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// The file really is where recover expects it.
	onDisk, err := os.ReadFile(filepath.Join(dir, "email.pad"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	v := New(dir)

	require.NoError(t, v.Write(context.Background(), "email.txt", []byte("x")))
	_, err := os.Stat(filepath.Join(dir, "email.txt"))
	assert.NoError(t, err)
}

func TestWriteBinaryBody(t *testing.T) {
	v := New(t.TempDir())
	ctx := context.Background()

	blob := []byte{0x00, 0xff, 0x10, 0x80, 0x00}
	require.NoError(t, v.Write(ctx, "email.enc", blob))

	got, err := v.Read(ctx, "email.enc")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestReadMissing(t *testing.T) {
	v := New(t.TempDir())
	_, err := v.Read(context.Background(), "absent.enc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stored secret")
}

func TestExists(t *testing.T) {
	v := New(t.TempDir())
	ctx := context.Background()

	ok, err := v.Exists(ctx, "email.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Write(ctx, "email.txt", []byte("x")))
	ok, err = v.Exists(ctx, "email.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}
