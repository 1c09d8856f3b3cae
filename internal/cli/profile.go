package cli

import (
	"context"
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

//go:embed profile_schema.cue
var profileSchemaCUE string

// ProfilesFileName is the preset file looked up inside the storage directory.
const ProfilesFileName = "profiles.cue"

// Profile is a named preset of make options, loaded from <dir>/profiles.cue
// and validated against the embedded schema. Pointer fields distinguish
// "unset" from zero so presets only override what they mention.
type Profile struct {
	Symbols       string `json:"symbols"`
	AllSymbols    bool   `json:"allSymbols"`
	Exclude       string `json:"exclude"`
	Growth        *int   `json:"growth"`
	Limit         *int   `json:"limit"`
	Pad           *bool  `json:"pad"`
	Encrypt       *bool  `json:"encrypt"`
	Words         string `json:"words"`
	MaxWordLength *int   `json:"maxWordLength"`
	KDF           string `json:"kdf"`
}

// LoadProfile reads and validates <dir>/profiles.cue and returns the named
// preset.
func LoadProfile(ctx context.Context, fs afs.Service, dir, name string) (*Profile, error) {
	loc := url.Join(dir, ProfilesFileName)
	ok, err := fs.Exists(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", loc, err)
	}
	if !ok {
		return nil, fmt.Errorf("profile %q requested but %s does not exist", name, loc)
	}
	data, err := fs.DownloadWithURL(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", loc, err)
	}

	cuectx := cuecontext.New()
	schema := cuectx.CompileString(profileSchemaCUE, cue.Filename("profile_schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling profile schema: %w", schema.Err())
	}
	val := cuectx.CompileBytes(data, cue.Filename(loc))
	if val.Err() != nil {
		return nil, fmt.Errorf("compiling %s: %w", loc, val.Err())
	}

	unified := schema.Unify(val)
	if err := unified.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", loc, err)
	}

	p := unified.LookupPath(cue.MakePath(cue.Str("profiles"), cue.Str(name)))
	if !p.Exists() {
		return nil, fmt.Errorf("profile %q not defined in %s", name, loc)
	}

	var out Profile
	if err := p.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", name, err)
	}
	return &out, nil
}
