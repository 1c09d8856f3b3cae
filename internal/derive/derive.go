package derive

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Growth factor bounds. Values outside [MinGrowth, MaxGrowth] are rejected
// at the CLI boundary.
const (
	MinGrowth = -3
	MaxGrowth = 3
)

// Normalize returns the NFC form of s. Every input that participates in
// hashing or rune-sum arithmetic goes through here first, so that the same
// key typed on different platforms recovers the same file.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Secret derives the working secret for a (key, label) pair:
// hex(SHA256(label + key)), 64 lowercase hex runes.
func Secret(key, label string) string {
	seed := Normalize(label) + Normalize(key)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// Scramble applies one pass of conditional rotations, insertions and
// deletions over the secret. Per position:
//
//   - a letter rotates out for a random letter on a 5/6 roll
//   - a digit rotates out for a random digit/symbol on a 5/6 roll
//   - the secret grows by one filler rune when roll >= 5-growth
//   - the secret shrinks by one rune when roll <= 2-growth
//
// A rotation moves the tail to the front, so the scramble also permutes the
// surviving runes. Length after the pass depends on the growth factor and
// the rolls; the caller caps it with Truncate when a limit is set.
func Scramble(secret string, set SymbolSet, growth int, src Source) string {
	s := []rune(secret)
	for i := 0; i < len(s); i++ {
		if unicode.IsLetter(s[i]) && roll(src) >= 2 {
			s = rotate(s, i, set.Alpha(src))
		}
		if unicode.IsDigit(s[i]) && roll(src) >= 2 {
			s = rotate(s, i, set.Digit(src))
		}
		if roll(src) >= 5-growth {
			s = append(s, set.Filler(src))
		}
		if roll(src) <= 2-growth && len(s) > 0 {
			s = s[:len(s)-1]
		}
	}
	return string(s)
}

// rotate replaces s[i] with r while moving the tail to the front:
// s[i+1:] + r + s[:i]. Length is preserved.
func rotate(s []rune, i int, r rune) []rune {
	out := make([]rune, 0, len(s))
	out = append(out, s[i+1:]...)
	out = append(out, r)
	out = append(out, s[:i]...)
	return out
}

// Truncate caps s at limit runes. A negative limit means no cap.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
