// Package pad computes the filler that surrounds a stored secret and the
// offsets needed to slice it back out.
//
// The front pad length is a pure function of the key and the label, so the
// recovery side recomputes it without any stored state. The back pad length
// only matters at write time; recovery slices from the front.
package pad

import (
	"strings"

	"github.com/roach88/pinstash/internal/derive"
)

// FrontLen derives the front pad length: XOR of the rune sums of key and
// label, both NFC-normalized.
func FrontLen(key, label string) int {
	return runeSum(derive.Normalize(key)) ^ runeSum(derive.Normalize(label))
}

// BackLen derives the back pad length from the 32-rune legacy key hash and
// the label. The formula predates this implementation and is kept for file
// compatibility: abs(^((-sum(keyHash)) & sum(label))).
func BackLen(keyHash, label string) int {
	s1 := -runeSum(keyHash)
	s2 := runeSum(derive.Normalize(label))
	v := ^(s1 & s2)
	if v < 0 {
		v = -v
	}
	return v
}

func runeSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

// Filler produces pad text of an exact rune length.
type Filler interface {
	Fill(n int, src derive.Source) string
}

// CharFiller draws pad runes from a symbol set's filler alphabet.
type CharFiller struct {
	Set derive.SymbolSet
}

func (f CharFiller) Fill(n int, src derive.Source) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(f.Set.Filler(src))
	}
	return b.String()
}

// WordFiller concatenates random words, then trims to the exact rune length
// so the recovery arithmetic is unaffected by word boundaries.
type WordFiller struct {
	Words []string
}

func (f WordFiller) Fill(n int, src derive.Source) string {
	var b strings.Builder
	count := 0
	for count < n {
		w := f.Words[src.Intn(len(f.Words))]
		b.WriteString(w)
		count += len([]rune(w))
	}
	return string([]rune(b.String())[:n])
}

// Wrap surrounds the secret with front and back pad text.
func Wrap(secret string, frontLen, backLen int, f Filler, src Source) string {
	front := f.Fill(frontLen, src)
	back := f.Fill(backLen, src)
	return front + secret + back
}

// Source aliases derive.Source for callers that only deal in pad terms.
type Source = derive.Source

// Slice extracts length runes starting at front from a padded blob. The
// result is shorter than length when the blob ends early, and empty when
// front is past the end.
func Slice(blob string, front, length int) string {
	r := []rune(blob)
	if front >= len(r) {
		return ""
	}
	end := front + length
	if end > len(r) {
		end = len(r)
	}
	return string(r[front:end])
}
