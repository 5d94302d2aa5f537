package commands

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// strippedPunctuation is removed from declared names. Hyphens and underscores survive
// because they become word separators.
const strippedPunctuation = "!\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// NormalizeName turns a declared name into its kebab-case lookup form:
// "Cube Speed" becomes "cube-speed" and "SetTargetSpeed" becomes "set-target-speed".
func NormalizeName(name string) (string, error) {
	s := strings.TrimSpace(name)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, s)

	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	s = strings.ReplaceAll(b.String(), "_", "-")
	s = strings.Trim(hyphenRun.ReplaceAllString(s, "-"), "-")

	if s == "" {
		return "", fmt.Errorf("command name %q is empty after normalization", name)
	}
	return s, nil
}
