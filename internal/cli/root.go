package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Dir     string // storage directory (local path or afs URL)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultDir is where secret files and the index live unless --dir is set.
const DefaultDir = "files"

// NewRootCommand creates the root command for the pinstash CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pinstash",
		Short: "pinstash - derive, stash and recover obfuscated passwords",
		Long: `pinstash derives a reproducible obfuscated password from a key and a
label, scrambles it, pads it with filler text, optionally encrypts it, and
stashes it in a per-label file. The recover command reverses the process by
re-deriving the pad offsets from the same key and label.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", DefaultDir, "storage directory or URL")

	// Add subcommands
	cmd.AddCommand(NewMakeCommand(opts))
	cmd.AddCommand(NewRecoverCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewWordsCommand(opts))

	return cmd
}

// configureLogging installs the default slog handler for command execution.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
