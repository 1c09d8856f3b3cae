package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/roach88/pinstash/internal/cipher"
	"github.com/roach88/pinstash/internal/config"
	"github.com/roach88/pinstash/internal/pad"
	"github.com/roach88/pinstash/internal/store"
	"github.com/roach88/pinstash/internal/vault"
)

// RecoverOptions holds flags for the recover command.
type RecoverOptions struct {
	*RootOptions
	Key       string
	Length    int
	Padded    bool
	Encrypted bool
	Show      bool
	KDF       string

	// CopyFunc overrides the clipboard write (for testing).
	// If nil, defaults to clipboard.WriteAll.
	CopyFunc func(string) error
}

// NewRecoverCommand creates the recover command.
func NewRecoverCommand(rootOpts *RootOptions) *cobra.Command {
	return newRecoverCommand(&RecoverOptions{RootOptions: rootOpts})
}

// newRecoverCommand builds the command around pre-made options so tests can
// stub the clipboard.
func newRecoverCommand(opts *RecoverOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover <label>",
		Short: "Recover a stashed password",
		Long: `Recover the password stashed under a label.

The front pad length is recomputed from the key and the label, so recovery
needs the same key the secret was made with plus the secret's length. Both
can come from flags, the label index, or the config file, in that order.

By default the secret goes to the clipboard; --show prints it instead.

Example:
  pinstash recover email --key mykey --length 24
  pinstash recover bank -k mykey --show`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecover(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Key, "key", "k", "", "key the secret was made with (prompted when absent)")
	cmd.Flags().IntVarP(&opts.Length, "length", "n", -1, "secret length in characters")
	cmd.Flags().BoolVar(&opts.Padded, "padded", false, "recover from a plain padded file (<label>.pad)")
	cmd.Flags().BoolVar(&opts.Encrypted, "encrypted", true, "recover from an encrypted file (<label>.enc)")
	cmd.Flags().BoolVarP(&opts.Show, "show", "s", false, "print the secret instead of copying it")
	cmd.Flags().StringVar(&opts.KDF, "kdf", string(cipher.KDFSHA256), "key derivation used at make time (sha256|argon2)")

	return cmd
}

// recoverResult is what the recover command reports. The secret only
// appears when --show is set.
type recoverResult struct {
	Recovered string `json:"recovered,omitempty"`
	Copied    bool   `json:"copied"`
	Notice    string `json:"notice,omitempty"`
}

func (r recoverResult) String() string {
	if r.Copied {
		return "\nPassword recovered and copied to clipboard, try not to paste prematurely"
	}
	if r.Notice != "" {
		return fmt.Sprintf("%s\nrecovered: %s", r.Notice, r.Recovered)
	}
	return fmt.Sprintf("\nrecovered: %s", r.Recovered)
}

func runRecover(opts *RecoverOptions, label string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	v := vault.New(opts.Dir)
	cfg, err := config.Load(ctx, v.FS(), opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	entry, err := lookupEntry(ctx, opts.Dir, label)
	if err != nil {
		return err
	}

	mode, err := resolveMode(opts, cfg, entry, cmd)
	if err != nil {
		return err
	}
	length, err := resolveLength(opts, cfg, entry, cmd)
	if err != nil {
		return err
	}
	key, err := resolveKey(opts, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "key not provided", err)
	}
	kdf, err := resolveKDF(opts, entry, cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("show") && cfg.Recover.Show != nil {
		opts.Show = *cfg.Recover.Show
	}

	data, err := v.Read(ctx, vault.FileName(label, mode))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read secret file", err)
	}

	var blob string
	if mode == vault.ModeEncrypted {
		aesKey, iv, err := cipher.Keys(kdf, key, label)
		if err != nil {
			return WrapExitError(ExitCommandError, "key derivation failed", err)
		}
		plain, err := cipher.Decrypt(data, aesKey, iv)
		if err != nil {
			return WrapExitError(ExitFailure, "decryption failed", err)
		}
		blob = string(plain)
	} else {
		blob = string(data)
	}

	var recovered string
	if mode == vault.ModePlain {
		recovered = pad.Slice(blob, 0, length)
	} else {
		front := pad.FrontLen(key, label)
		slog.Debug("pad offsets", "front", front, "length", length)
		recovered = pad.Slice(blob, front, length)
	}
	if len([]rune(recovered)) < length {
		return NewExitError(ExitFailure,
			fmt.Sprintf("recovered %d of %d characters: wrong key, wrong length, or truncated file",
				len([]rune(recovered)), length))
	}

	return deliver(opts, recovered, cmd)
}

// deliver hands the secret to the user: clipboard by default, stdout with
// --show or when no clipboard is available.
func deliver(opts *RecoverOptions, recovered string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Show {
		return formatter.Success(recoverResult{Recovered: recovered})
	}

	copyFunc := opts.CopyFunc
	if copyFunc == nil {
		if clipboard.Unsupported {
			return formatter.Success(recoverResult{
				Recovered: recovered,
				Notice:    "No clipboard on this platform, showing password instead.",
			})
		}
		copyFunc = clipboard.WriteAll
	}
	if err := copyFunc(recovered); err != nil {
		slog.Debug("clipboard write failed, falling back to stdout", "error", err)
		return formatter.Success(recoverResult{
			Recovered: recovered,
			Notice:    "Clipboard unavailable, showing password instead.",
		})
	}
	return formatter.Success(recoverResult{Copied: true})
}

// lookupEntry fetches the index entry for a label, tolerating a missing
// index or a missing row.
func lookupEntry(ctx context.Context, dir, label string) (*store.Entry, error) {
	st, err := openIndex(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open index", err)
	}
	if st == nil {
		return nil, nil
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing index", "error", closeErr)
		}
	}()

	entry, err := st.Get(ctx, label)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read index", err)
	}
	return &entry, nil
}

// resolveMode picks the file mode: explicit flag > index > config > encrypted.
func resolveMode(opts *RecoverOptions, cfg *config.Config, entry *store.Entry, cmd *cobra.Command) (vault.Mode, error) {
	changed := cmd.Flags().Changed
	if changed("padded") && opts.Padded {
		return vault.ModePadded, nil
	}
	if changed("encrypted") {
		if opts.Encrypted {
			return vault.ModeEncrypted, nil
		}
		return vault.ModePadded, nil
	}
	if entry != nil {
		mode, err := vault.ParseMode(entry.Mode)
		if err != nil {
			return "", WrapExitError(ExitCommandError, "corrupt index entry", err)
		}
		return mode, nil
	}
	if cfg.Recover.Encrypted != nil && !*cfg.Recover.Encrypted {
		return vault.ModePadded, nil
	}
	return vault.ModeEncrypted, nil
}

// resolveLength picks the secret length: flag > index > config.
func resolveLength(opts *RecoverOptions, cfg *config.Config, entry *store.Entry, cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("length") {
		if opts.Length < 0 {
			return 0, NewExitError(ExitCommandError, "length must be non-negative")
		}
		return opts.Length, nil
	}
	if entry != nil {
		return entry.Length, nil
	}
	if cfg.Recover.Length != nil {
		return *cfg.Recover.Length, nil
	}
	return 0, NewExitError(ExitCommandError,
		"length not provided: pass --length, or add length to the config file")
}

// resolveKey picks the key: flag > config > prompt.
func resolveKey(opts *RecoverOptions, cfg *config.Config) (string, error) {
	if opts.Key != "" {
		return opts.Key, nil
	}
	if cfg.Recover.Key != "" {
		return cfg.Recover.Key, nil
	}
	return promptKey("key: ")
}

// resolveKDF picks the key derivation: flag > index > sha256.
func resolveKDF(opts *RecoverOptions, entry *store.Entry, cmd *cobra.Command) (cipher.KDF, error) {
	name := opts.KDF
	if !cmd.Flags().Changed("kdf") && entry != nil && entry.KDF != "" {
		name = entry.KDF
	}
	kdf, err := cipher.ParseKDF(name)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "invalid --kdf", err)
	}
	return kdf, nil
}
