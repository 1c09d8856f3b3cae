// Package vault reads and writes the per-label secret files.
//
// File bodies go through viant/afs, so the store directory can be a plain
// local path or any afs-resolvable URL. The file name encodes the storage
// mode:
//
//	<label>.txt  scrambled secret, no padding
//	<label>.pad  front pad + secret + back pad, UTF-8 text
//	<label>.enc  AES-CBC ciphertext of the padded blob
package vault

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Mode selects the on-disk representation of a secret.
type Mode string

const (
	ModePlain     Mode = "plain"
	ModePadded    Mode = "pad"
	ModeEncrypted Mode = "enc"
)

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModePlain, ModePadded, ModeEncrypted:
		return Mode(name), nil
	}
	return "", fmt.Errorf("unknown mode %q", name)
}

// Ext returns the file extension for a mode, including the dot.
func (m Mode) Ext() string {
	switch m {
	case ModePadded:
		return ".pad"
	case ModeEncrypted:
		return ".enc"
	default:
		return ".txt"
	}
}

// FileName returns the file name a label is stored under in the given mode.
func FileName(label string, m Mode) string {
	return label + m.Ext()
}

// Vault stores secret files under a base location.
type Vault struct {
	fs  afs.Service
	dir string
}

// New creates a vault over the given directory or URL.
func New(dir string) *Vault {
	return &Vault{fs: afs.New(), dir: dir}
}

// URL resolves a file name inside the vault.
func (v *Vault) URL(name string) string {
	return url.Join(v.dir, name)
}

// Write stores a secret file, creating the directory as needed.
func (v *Vault) Write(ctx context.Context, name string, data []byte) error {
	loc := v.URL(name)
	if err := v.fs.Upload(ctx, loc, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("vault: writing %s: %w", loc, err)
	}
	return nil
}

// Read loads a secret file.
func (v *Vault) Read(ctx context.Context, name string) ([]byte, error) {
	loc := v.URL(name)
	ok, err := v.fs.Exists(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("vault: checking %s: %w", loc, err)
	}
	if !ok {
		return nil, fmt.Errorf("vault: no stored secret at %s", loc)
	}
	data, err := v.fs.DownloadWithURL(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("vault: reading %s: %w", loc, err)
	}
	return data, nil
}

// Exists reports whether a secret file is present.
func (v *Vault) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := v.fs.Exists(ctx, v.URL(name))
	if err != nil {
		return false, fmt.Errorf("vault: checking %s: %w", v.URL(name), err)
	}
	return ok, nil
}

// FS exposes the underlying afs service for callers that need to read
// auxiliary files (word lists, config) from the same schemes.
func (v *Vault) FS() afs.Service {
	return v.fs
}
