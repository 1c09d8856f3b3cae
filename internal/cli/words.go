package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/roach88/pinstash/internal/derive"
)

// WordsOptions holds flags for the words command.
type WordsOptions struct {
	*RootOptions
	MaxWordLength int
	Sample        int
}

// NewWordsCommand creates the words command.
func NewWordsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WordsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "words <file>",
		Short: "Inspect a word list",
		Long: `Inspect a word list the way word mode will see it: one word per line,
title-cased, blanks skipped, words over --max-word-length dropped.

Example:
  pinstash words wordlist.txt --max-word-length 6`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWords(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MaxWordLength, "max-word-length", -1, "skip words longer than this many characters (-1 = all)")
	cmd.Flags().IntVar(&opts.Sample, "sample", 5, "number of sample words to show")

	return cmd
}

// wordsResult is what the words command reports.
type wordsResult struct {
	File    string   `json:"file"`
	Count   int      `json:"count"`
	Longest string   `json:"longest"`
	Sample  []string `json:"sample,omitempty"`
}

func (r wordsResult) String() string {
	return fmt.Sprintf("file: %s\nusable words: %d\nlongest: %s\nsample: %s",
		r.File, r.Count, r.Longest, strings.Join(r.Sample, " "))
}

func runWords(opts *WordsOptions, file string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, file)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read word list %s", file), err)
	}
	words := derive.ParseWords(data, opts.MaxWordLength)
	if len(words) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("word list %s has no usable words", file))
	}

	longest := ""
	for _, w := range words {
		if len([]rune(w)) > len([]rune(longest)) {
			longest = w
		}
	}
	sample := words
	if len(sample) > opts.Sample {
		sample = sample[:opts.Sample]
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	return formatter.Success(wordsResult{
		File:    file,
		Count:   len(words),
		Longest: longest,
		Sample:  sample,
	})
}
