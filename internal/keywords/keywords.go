// Package keywords splits free text into searchable catalog keywords.
package keywords

import (
	"regexp"
	"unicode/utf8"
)

// MinLength is the shortest keyword kept, in runes
const MinLength = 3

// word runs: letters, numbers, underscore and the Arabic-script block
// from alef-madda to Farsi yeh, which also keeps diacritics inside a word
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_\x{0622}-\x{06CC}]+`)

// Extract returns the keywords of text in their original order.
// Duplicates are kept.
func Extract(text string) []string {
	var out []string
	for _, w := range wordPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(w) >= MinLength {
			out = append(out, w)
		}
	}
	return out
}
