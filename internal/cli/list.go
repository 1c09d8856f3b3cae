package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/pinstash/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed labels",
		Long: `List every label recorded in the index, with the metadata recover needs:
storage mode, secret length, growth factor and file name.

The index is a convenience; labels stashed on machines without one (or on
remote storage) will not appear here but remain recoverable with explicit
flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openIndex(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open index", err)
	}
	if st == nil {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("storage location %s has no local index", opts.Dir))
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing index", "error", closeErr)
		}
	}()

	entries, err := st.List(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list index", err)
	}

	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(Response{
			Status: "ok",
			Data:   entries,
		})
	}
	fmt.Fprint(cmd.OutOrStdout(), renderEntries(entries))
	return nil
}

// renderEntries formats index entries as an aligned table.
func renderEntries(entries []store.Entry) string {
	if len(entries) == 0 {
		return "no labels indexed\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tMODE\tLENGTH\tGROWTH\tWORDS\tKDF\tFILE\tCREATED")
	for _, e := range entries {
		words := "-"
		if e.WordMode {
			words = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			e.Label, e.Mode, e.Length, e.Growth, words, e.KDF, e.File, e.CreatedAt)
	}
	w.Flush()
	return b.String()
}
