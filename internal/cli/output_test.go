package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitErrorMessageAndUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := WrapExitError(ExitCommandError, "failed to open index", inner)

	assert.Equal(t, "failed to open index: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"command error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError},
		{"failure", NewExitError(ExitFailure, "bad decrypt"), ExitFailure},
		{"wrapped", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner")), ExitCommandError},
		{"plain error", errors.New("whatever"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"length": 24}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("E001", "decryption failed", nil))
	assert.Contains(t, buf.String(), "Error [E001]: decryption failed")
}

func TestFormatterVerboseLogRouting(t *testing.T) {
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}

	f.VerboseLog("resolved length %d", 24)
	assert.Empty(t, out.String(), "diagnostics must not corrupt the JSON stream")
	assert.Contains(t, diag.String(), "resolved length 24")

	f.Verbose = false
	diag.Reset()
	f.VerboseLog("hidden")
	assert.Empty(t, diag.String())
}
