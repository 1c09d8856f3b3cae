// Package config loads optional per-store defaults from <dir>/config.yaml.
//
// The file replaces the historical files/config.ini. Precedence is always
// flag > config > index; a missing or empty file is not an error.
package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the store directory.
const FileName = "config.yaml"

// Config holds per-store defaults for the make and recover commands.
type Config struct {
	Make    MakeDefaults    `yaml:"make"`
	Recover RecoverDefaults `yaml:"recover"`
}

// MakeDefaults seed the make command's flags.
type MakeDefaults struct {
	Symbols string `yaml:"symbols"`
	Growth  *int   `yaml:"growth"`
	Limit   *int   `yaml:"limit"`
}

// RecoverDefaults seed the recover command's flags. Storing the key here is
// a convenience the historical config file offered; it trades secrecy for
// one fewer prompt and is the user's call.
type RecoverDefaults struct {
	Key       string `yaml:"key"`
	Length    *int   `yaml:"length"`
	Show      *bool  `yaml:"show"`
	Encrypted *bool  `yaml:"encrypted"`
}

// Load reads <dir>/config.yaml through the given afs service. A missing
// file yields a zero Config and no error; a malformed file is an error.
func Load(ctx context.Context, fs afs.Service, dir string) (*Config, error) {
	loc := url.Join(dir, FileName)
	ok, err := fs.Exists(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("config: checking %s: %w", loc, err)
	}
	if !ok {
		return &Config{}, nil
	}
	data, err := fs.DownloadWithURL(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", loc, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", loc, err)
	}
	return &cfg, nil
}
