package derive

import "strings"

const (
	alphaSet = "QWERTYUIOPLKJHGFDSAZXCVBNMqwertyuiopasdfghjklzxcvbnm"
	digitSet = "1234567890"
	baseSet  = "1234567890qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM"

	// Punctuation is the full extra-symbol alphabet enabled by --all-symbols.
	Punctuation = `,./;\[]!@#$%^&*()_+?|:+-=<>:|{}_`
)

// SymbolSet describes the alphabets replacements and filler are drawn from.
// The zero value uses digits and letters only.
type SymbolSet struct {
	extra []rune
}

// NewSymbolSet builds a set with the given extra symbols. Single quotes are
// stripped so shell-quoted arguments behave the same quoted or not.
func NewSymbolSet(extra string) SymbolSet {
	extra = strings.ReplaceAll(extra, "'", "")
	return SymbolSet{extra: []rune(extra)}
}

// AllSymbols returns a set using the full punctuation alphabet.
func AllSymbols() SymbolSet {
	return SymbolSet{extra: []rune(Punctuation)}
}

// Excluding returns a set using the full punctuation alphabet minus the
// given characters.
func Excluding(taboo string) SymbolSet {
	taboo = strings.ReplaceAll(taboo, "'", "")
	set := Punctuation
	for _, r := range taboo {
		set = strings.ReplaceAll(set, string(r), "")
	}
	return SymbolSet{extra: []rune(set)}
}

// Extra returns the configured extra symbols.
func (s SymbolSet) Extra() string {
	return string(s.extra)
}

// Alpha picks a random letter.
func (s SymbolSet) Alpha(src Source) rune {
	return pick([]rune(alphaSet), src)
}

// Digit picks a random digit or extra symbol.
func (s SymbolSet) Digit(src Source) rune {
	return pick(append([]rune(digitSet), s.extra...), src)
}

// Filler picks a random rune from the full filler alphabet: digits, letters
// and the extra symbols. Pad text is built from this alphabet.
func (s SymbolSet) Filler(src Source) rune {
	return pick(append([]rune(baseSet), s.extra...), src)
}

func pick(set []rune, src Source) rune {
	return set[src.Intn(len(set))]
}
