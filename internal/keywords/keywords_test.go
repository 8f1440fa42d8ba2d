package keywords

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		words []string
	}{
		{"Empty", "", nil},
		{"Whitespace only", "  \t\n ", nil},
		{"Persian with digits", "گوشی سامسونگ مدل ۵۵۵", []string{"گوشی", "سامسونگ", "مدل", "۵۵۵"}},
		{"Short tokens dropped", "یک دو سه گوشی", []string{"گوشی"}},
		{"Punctuation and ZWNJ split", "لپ‌تاپ، ایسوس؟", []string{"تاپ", "ایسوس"}},
		{"Duplicates kept", "موس موس بی‌سیم", []string{"موس", "موس", "سیم"}},
		{"Latin and underscore", "AMOLED screen is_ok 65W", []string{"AMOLED", "screen", "is_ok", "65W"}},
		{"Diacritics stay inside a word", "کِتاب", []string{"کِتاب"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.words, Extract(tc.text))
		})
	}
}

func TestExtractKeepsOnlyLongTokens(t *testing.T) {
	for _, w := range Extract("a ab abc ۱۲ ۱۲۳ هد هدف") {
		assert.GreaterOrEqual(t, len([]rune(w)), MinLength, w)
	}
}
