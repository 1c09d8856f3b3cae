package derive

import (
	"bufio"
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// baseWordCount is the number of words a word-mode secret starts from
// before the growth factor is applied.
const baseWordCount = 4

var titleCaser = cases.Title(language.Und)

// ParseWords extracts usable words from a word-list file: one word per line,
// title-cased, skipping blanks and words longer than maxLen runes.
// maxLen < 0 keeps every word.
func ParseWords(data []byte, maxLen int) []string {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		if maxLen >= 0 && len([]rune(w)) > maxLen {
			continue
		}
		words = append(words, titleCaser.String(w))
	}
	return words
}

// WordSecret builds a word-mode secret: 4+growth words (at least one) drawn
// from the list and concatenated.
func WordSecret(words []string, growth int, src Source) string {
	n := baseWordCount + growth
	if n < 1 {
		n = 1
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(words[src.Intn(len(words))])
	}
	return b.String()
}
