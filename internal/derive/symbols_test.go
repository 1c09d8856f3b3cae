package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/pinstash/internal/testutil"
)

func TestNewSymbolSetStripsQuotes(t *testing.T) {
	set := NewSymbolSet("'!@#'")
	assert.Equal(t, "!@#", set.Extra())
}

func TestAllSymbols(t *testing.T) {
	assert.Equal(t, Punctuation, AllSymbols().Extra())
}

func TestExcluding(t *testing.T) {
	tests := []struct {
		name    string
		taboo   string
		removed string
	}{
		{"single char", "@", "@"},
		{"several chars", "@#$", "@#$"},
		{"quoted input", "'@#'", "@#"},
		{"absent char keeps set", "a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Excluding(tt.taboo)
			for _, r := range tt.removed {
				assert.NotContains(t, set.Extra(), string(r))
			}
			for _, r := range Punctuation {
				if !strings.ContainsRune(tt.removed, r) {
					assert.Contains(t, set.Extra(), string(r))
				}
			}
		})
	}
}

func TestSymbolSetPicks(t *testing.T) {
	set := NewSymbolSet("!@")
	src := testutil.NewSource(3)

	for i := 0; i < 100; i++ {
		assert.Contains(t, alphaSet, string(set.Alpha(src)))
		assert.Contains(t, digitSet+"!@", string(set.Digit(src)))
		assert.Contains(t, baseSet+"!@", string(set.Filler(src)))
	}
}

func TestZeroSymbolSet(t *testing.T) {
	var set SymbolSet
	src := testutil.NewSource(3)
	for i := 0; i < 50; i++ {
		assert.Contains(t, digitSet, string(set.Digit(src)))
		assert.Contains(t, baseSet, string(set.Filler(src)))
	}
}
