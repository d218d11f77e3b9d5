package naming

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Normal
	return a
}()

// TransliterateWords renders text as ASCII words: each Han character
// becomes one toneless pinyin syllable, and every run of other characters
// is transliterated as a single word.
func TransliterateWords(text string) []string {
	var (
		words []string
		run   strings.Builder
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if w := strings.TrimSpace(unidecode.Unidecode(run.String())); w != "" {
			words = append(words, w)
		}
		run.Reset()
	}
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			flush()
			if py := pinyin.SinglePinyin(r, pinyinArgs); len(py) > 0 && py[0] != "" {
				words = append(words, py[0])
			}
			continue
		}
		run.WriteRune(r)
	}
	flush()
	return words
}

// Transliterate returns an ASCII rendering of text. ASCII input is
// returned unchanged.
func Transliterate(text string) string {
	if isASCII(text) {
		return text
	}
	return strings.Join(TransliterateWords(text), " ")
}
