// Package naming derives target identifiers and directory names from
// arbitrary source text.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Words splits text into ASCII alphanumeric words after NFKC folding.
func Words(text string) []string {
	parts := nonAlnum.Split(norm.NFKC.String(text), -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// HasAlnum reports whether text carries at least one ASCII letter or digit.
func HasAlnum(text string) bool {
	for _, r := range norm.NFKC.String(text) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return true
		}
	}
	return false
}

// CamelCase converts text to a lower camel-case identifier. It returns ""
// when text has no alphanumeric words.
func CamelCase(text string) string {
	words := Words(text)
	if len(words) == 0 {
		return ""
	}
	return guardDigit(strcase.LowerCamelCase(strings.Join(words, " ")))
}

// PascalCase converts text to an upper camel-case identifier.
func PascalCase(text string) string {
	words := Words(text)
	if len(words) == 0 {
		return ""
	}
	return guardDigit(strcase.UpperCamelCase(strings.Join(words, " ")))
}

func guardDigit(id string) string {
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		return "_" + id
	}
	return id
}

// RefName returns the last path segment of a reference, with JSON pointer
// escapes decoded.
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(ref)
}

// ModelName strips a dotted namespace prefix and converts the remainder to
// a type identifier. Non-Latin text is transliterated first.
func ModelName(raw string) string {
	base := raw
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	name := PascalCase(Transliterate(base))
	if name == "" {
		return "Model"
	}
	return name
}

// Namespace returns the dotted prefix of a schema key, "" when undotted.
func Namespace(raw string) string {
	if i := strings.LastIndex(raw, "."); i >= 0 {
		return raw[:i]
	}
	return ""
}

// PropertyName converts a wire key into a member identifier.
func PropertyName(key string) string {
	name := CamelCase(Transliterate(key))
	if name == "" {
		return "field"
	}
	return name
}

var (
	invalidDirChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	dashRuns        = regexp.MustCompile(`-+`)
)

// SanitizeDirName keeps [A-Za-z0-9_-], replaces everything else with '-'
// and collapses dash runs. Empty results become "default".
func SanitizeDirName(name string) string {
	out := invalidDirChars.ReplaceAllString(name, "-")
	out = dashRuns.ReplaceAllString(out, "-")
	if out == "" {
		return "default"
	}
	return out
}

// SanitizeFolderPath sanitizes each '/'-separated segment of a folder
// path, dropping empty and dot segments. The result may be "".
func SanitizeFolderPath(folder string) string {
	var segs []string
	for _, seg := range strings.Split(strings.ReplaceAll(folder, "\\", "/"), "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segs = append(segs, SanitizeDirName(seg))
	}
	return strings.Join(segs, "/")
}

// TagDir resolves the folder for a tag: an explicit mapping wins, otherwise
// non-ASCII tags are transliterated before sanitizing.
func TagDir(tag string, folderMap map[string]string) string {
	if mapped, ok := folderMap[tag]; ok && strings.TrimSpace(mapped) != "" {
		return SanitizeDirName(strings.TrimSpace(mapped))
	}
	if isASCII(tag) {
		return SanitizeDirName(tag)
	}
	return SanitizeDirName(strings.Join(TransliterateWords(tag), "-"))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= unicode.MaxASCII {
			return false
		}
	}
	return true
}
