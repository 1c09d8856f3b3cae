package pad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pinstash/internal/derive"
	"github.com/roach88/pinstash/internal/testutil"
)

func TestFrontLen(t *testing.T) {
	// "ab" sums to 97+98=195, "c" to 99; 195^99 = 160.
	assert.Equal(t, 160, FrontLen("ab", "c"))

	// Recomputable: make side and recover side agree by construction.
	assert.Equal(t, FrontLen("key", "label"), FrontLen("key", "label"))

	// Identical key and label XOR to zero.
	assert.Equal(t, 0, FrontLen("same", "same"))
}

func TestFrontLenNormalizes(t *testing.T) {
	assert.Equal(t, FrontLen("café", "x"), FrontLen("café", "x"))
}

func TestBackLen(t *testing.T) {
	// s1 = -(97+98) = -195, s2 = 99; -195 & 99 = 33; ^33 = -34; abs = 34.
	assert.Equal(t, 34, BackLen("ab", "c"))
	assert.GreaterOrEqual(t, BackLen("0f3a", "email"), 0)
	assert.Equal(t, BackLen("0f3a", "email"), BackLen("0f3a", "email"))
}

func TestCharFillerLength(t *testing.T) {
	f := CharFiller{Set: derive.NewSymbolSet("!")}
	src := testutil.NewSource(2)

	for _, n := range []int{0, 1, 17, 200} {
		assert.Len(t, []rune(f.Fill(n, src)), n)
	}
}

func TestWordFillerExactLength(t *testing.T) {
	f := WordFiller{Words: []string{"Alpha", "Bob", "Charlie"}}
	src := testutil.NewSource(2)

	for _, n := range []int{0, 1, 4, 33, 100} {
		assert.Len(t, []rune(f.Fill(n, src)), n)
	}
}

func TestWrapAndSlice(t *testing.T) {
	secret := "s3cr3t"
	key, label := "key", "email"
	front := FrontLen(key, label)
	back := BackLen("abcd1234", label)

	f := CharFiller{Set: derive.NewSymbolSet("")}
	blob := Wrap(secret, front, back, f, testutil.NewSource(8))

	require.Len(t, []rune(blob), front+len([]rune(secret))+back)
	assert.Equal(t, secret, Slice(blob, front, len([]rune(secret))))
}

func TestWrapWordFillerRoundTrip(t *testing.T) {
	secret := "HorseBatteryStaple"
	front, back := 41, 13

	f := WordFiller{Words: []string{"One", "Two", "Three", "Elephant"}}
	blob := Wrap(secret, front, back, f, testutil.NewSource(8))

	require.Len(t, []rune(blob), front+len([]rune(secret))+back)
	assert.Equal(t, secret, Slice(blob, front, len([]rune(secret))))
}

func TestSliceEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		blob   string
		front  int
		length int
		want   string
	}{
		{"front past end", "abc", 5, 2, ""},
		{"front at end", "abc", 3, 2, ""},
		{"length past end", "abcdef", 4, 10, "ef"},
		{"zero length", "abcdef", 2, 0, ""},
		{"whole blob", "abcdef", 0, 6, "abcdef"},
		{"multibyte runes", strings.Repeat("é", 5) + "ok" + "xx", 5, 2, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slice(tt.blob, tt.front, tt.length))
		})
	}
}
