package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/pinstash/internal/cipher"
	"github.com/roach88/pinstash/internal/config"
	"github.com/roach88/pinstash/internal/derive"
	"github.com/roach88/pinstash/internal/pad"
	"github.com/roach88/pinstash/internal/store"
	"github.com/roach88/pinstash/internal/vault"
)

// MakeOptions holds flags for the make command.
type MakeOptions struct {
	*RootOptions
	Symbols       string
	AllSymbols    bool
	Exclude       string
	Growth        int
	Limit         int
	Pad           bool
	Encrypt       bool
	Words         string
	MaxWordLength int
	KDF           string
	Profile       string

	// Source overrides the scramble randomness (for testing).
	// If nil, defaults to the crypto/rand source.
	Source derive.Source
}

// NewMakeCommand creates the make command.
func NewMakeCommand(rootOpts *RootOptions) *cobra.Command {
	return newMakeCommand(&MakeOptions{RootOptions: rootOpts})
}

// newMakeCommand builds the command around pre-made options so tests can
// inject a deterministic Source.
func newMakeCommand(opts *MakeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make <key> <label>",
		Short: "Derive and stash an obfuscated password",
		Long: `Derive an obfuscated password from a key and a label and stash it under
the storage directory.

The working secret is the SHA-256 of label+key, scrambled with random
rotations, insertions and deletions. With --pad the secret is surrounded by
filler whose front length is recomputable from the key and label alone;
with --encrypt the padded blob is AES-CBC encrypted as well.

When only the label is given, the key is prompted for without echo.

Example:
  pinstash make mykey email --pad
  pinstash make mykey bank -e -g 2 --all-symbols
  pinstash make email --words wordlist.txt -p`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMake(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Symbols, "symbols", "s", "", "extra symbols added to the replacement and filler alphabets")
	cmd.Flags().BoolVar(&opts.AllSymbols, "all-symbols", false, "use the full punctuation alphabet as extra symbols")
	cmd.Flags().StringVar(&opts.Exclude, "exclude", "", "use the full punctuation alphabet minus these characters")
	cmd.Flags().IntVarP(&opts.Growth, "growth", "g", 0, "growth factor in [-3,3], biases insertions over deletions")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", -1, "truncate the secret to this many characters (-1 = no limit)")
	cmd.Flags().BoolVarP(&opts.Pad, "pad", "p", false, "surround the secret with recomputable filler")
	cmd.Flags().BoolVarP(&opts.Encrypt, "encrypt", "e", false, "pad and AES-CBC encrypt the stored file")
	cmd.Flags().StringVarP(&opts.Words, "words", "w", "", "word list file: build the secret and filler from words")
	cmd.Flags().IntVar(&opts.MaxWordLength, "max-word-length", -1, "skip words longer than this many characters (-1 = all)")
	cmd.Flags().StringVar(&opts.KDF, "kdf", string(cipher.KDFSHA256), "key derivation for --encrypt (sha256|argon2)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "apply a named preset from profiles.cue")

	return cmd
}

// makeResult is what the make command reports. The text rendering matches
// the historical tool output.
type makeResult struct {
	Password   string `json:"password"`
	Length     int    `json:"length"`
	File       string `json:"file"`
	Padding    bool   `json:"padding"`
	Encryption bool   `json:"encryption"`
}

func (r makeResult) String() string {
	return fmt.Sprintf("\nnew password: %s\nlength: %d\nfile: %s\npadding: %t\nencryption: %t",
		r.Password, r.Length, r.File, r.Padding, r.Encryption)
}

func runMake(opts *MakeOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	key, label, err := makeKeyLabel(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "arguments missing or formatted incorrectly", err)
	}

	v := vault.New(opts.Dir)

	cfg, err := config.Load(ctx, v.FS(), opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := applyMakeDefaults(ctx, opts, cfg, cmd, v); err != nil {
		return err
	}

	if opts.Growth < derive.MinGrowth || opts.Growth > derive.MaxGrowth {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("growth factor %d out of range [%d, %d]", opts.Growth, derive.MinGrowth, derive.MaxGrowth))
	}
	kdf, err := cipher.ParseKDF(opts.KDF)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --kdf", err)
	}

	src := opts.Source
	if src == nil {
		src = derive.NewSource()
	}
	set := symbolSet(opts)

	// Build the secret.
	var secret string
	var words []string
	if opts.Words != "" {
		data, err := v.FS().DownloadWithURL(ctx, opts.Words)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read word list %s", opts.Words), err)
		}
		words = derive.ParseWords(data, opts.MaxWordLength)
		if len(words) == 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf("word list %s has no usable words", opts.Words))
		}
		secret = derive.WordSecret(words, opts.Growth, src)
	} else {
		secret = derive.Scramble(derive.Secret(key, label), set, opts.Growth, src)
	}
	secret = derive.Truncate(secret, opts.Limit)
	slog.Debug("secret derived", "label", label, "length", len([]rune(secret)), "word_mode", opts.Words != "")

	// Wrap and store.
	mode := vault.ModePlain
	switch {
	case opts.Encrypt:
		mode = vault.ModeEncrypted
	case opts.Pad:
		mode = vault.ModePadded
	}

	body := secret
	if mode != vault.ModePlain {
		frontLen := pad.FrontLen(key, label)
		backLen := pad.BackLen(cipher.LegacyKeyHex(key), label)
		var filler pad.Filler = pad.CharFiller{Set: set}
		if len(words) > 0 {
			filler = pad.WordFiller{Words: words}
		}
		body = pad.Wrap(secret, frontLen, backLen, filler, src)
		slog.Debug("secret padded", "front", frontLen, "back", backLen)
	}

	data := []byte(body)
	if mode == vault.ModeEncrypted {
		aesKey, iv, err := cipher.Keys(kdf, key, label)
		if err != nil {
			return WrapExitError(ExitCommandError, "key derivation failed", err)
		}
		if data, err = cipher.Encrypt([]byte(body), aesKey, iv); err != nil {
			return WrapExitError(ExitFailure, "encryption failed", err)
		}
	}

	fileName := vault.FileName(label, mode)
	if err := v.Write(ctx, fileName, data); err != nil {
		return WrapExitError(ExitFailure, "failed to write secret file", err)
	}

	if err := indexEntry(ctx, opts, label, mode, secret, kdf, fileName, len(words) > 0); err != nil {
		return err
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.Success(makeResult{
		Password:   secret,
		Length:     len([]rune(secret)),
		File:       v.URL(fileName),
		Padding:    mode != vault.ModePlain,
		Encryption: mode == vault.ModeEncrypted,
	})
}

// makeKeyLabel resolves positional arguments: <key> <label>, or just <label>
// with the key prompted for.
func makeKeyLabel(args []string) (key, label string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	label = args[0]
	key, err = promptKey("key: ")
	return key, label, err
}

// symbolSet resolves the extra-symbol flags. --exclude wins over
// --all-symbols, which wins over --symbols.
func symbolSet(opts *MakeOptions) derive.SymbolSet {
	switch {
	case opts.Exclude != "":
		return derive.Excluding(opts.Exclude)
	case opts.AllSymbols:
		return derive.AllSymbols()
	default:
		return derive.NewSymbolSet(opts.Symbols)
	}
}

// applyMakeDefaults layers profile presets and config defaults under
// explicitly set flags: flag > profile > config.
func applyMakeDefaults(ctx context.Context, opts *MakeOptions, cfg *config.Config, cmd *cobra.Command, v *vault.Vault) error {
	changed := cmd.Flags().Changed

	if opts.Profile != "" {
		p, err := LoadProfile(ctx, v.FS(), opts.Dir, opts.Profile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load profile", err)
		}
		if !changed("symbols") && p.Symbols != "" {
			opts.Symbols = p.Symbols
		}
		if !changed("all-symbols") && p.AllSymbols {
			opts.AllSymbols = true
		}
		if !changed("exclude") && p.Exclude != "" {
			opts.Exclude = p.Exclude
		}
		if !changed("growth") && p.Growth != nil {
			opts.Growth = *p.Growth
		}
		if !changed("limit") && p.Limit != nil {
			opts.Limit = *p.Limit
		}
		if !changed("pad") && p.Pad != nil {
			opts.Pad = *p.Pad
		}
		if !changed("encrypt") && p.Encrypt != nil {
			opts.Encrypt = *p.Encrypt
		}
		if !changed("words") && p.Words != "" {
			opts.Words = p.Words
		}
		if !changed("max-word-length") && p.MaxWordLength != nil {
			opts.MaxWordLength = *p.MaxWordLength
		}
		if !changed("kdf") && p.KDF != "" {
			opts.KDF = p.KDF
		}
		slog.Debug("profile applied", "profile", opts.Profile)
	}

	if !changed("symbols") && opts.Symbols == "" && cfg.Make.Symbols != "" {
		opts.Symbols = cfg.Make.Symbols
	}
	if !changed("growth") && opts.Profile == "" && cfg.Make.Growth != nil {
		opts.Growth = *cfg.Make.Growth
	}
	if !changed("limit") && opts.Profile == "" && cfg.Make.Limit != nil {
		opts.Limit = *cfg.Make.Limit
	}
	return nil
}

// indexEntry records the stash in the label index when one is available.
func indexEntry(ctx context.Context, opts *MakeOptions, label string, mode vault.Mode, secret string, kdf cipher.KDF, fileName string, wordMode bool) error {
	st, err := openIndex(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open index", err)
	}
	if st == nil {
		return nil
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing index", "error", closeErr)
		}
	}()

	entry := store.Entry{
		Label:    label,
		Mode:     string(mode),
		Length:   len([]rune(secret)),
		Growth:   opts.Growth,
		WordMode: wordMode,
		KDF:      string(kdf),
		File:     fileName,
	}
	if _, err := st.Put(ctx, entry); err != nil {
		return WrapExitError(ExitFailure, "failed to index label", err)
	}
	slog.Debug("label indexed", "label", label, "mode", mode)
	return nil
}
