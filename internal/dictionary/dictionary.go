package dictionary

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

//go:embed top_passwords.txt
var topPasswordsRaw string

// topPasswords holds the lower-cased entries of the embedded list.
var topPasswords map[string]struct{}

var (
	reWordThenDigits = regexp.MustCompile(`^([a-zа-яё]+)[0-9]*$`)
	reDigitsThenWord = regexp.MustCompile(`^[0-9]*([a-zа-яё]+)$`)
)

func init() {
	lines := strings.Split(topPasswordsRaw, "\n")
	topPasswords = make(map[string]struct{}, len(lines))
	for _, line := range lines {
		pw := strings.TrimSpace(line)
		if pw == "" || strings.HasPrefix(pw, "#") {
			continue
		}
		topPasswords[strings.ToLower(pw)] = struct{}{}
	}
}

// Contains reports whether word is on the list (case-insensitive).
func Contains(word string) bool {
	_, ok := topPasswords[strings.ToLower(word)]
	return ok
}

// Size returns the number of distinct entries on the list.
func Size() int { return len(topPasswords) }

// Check returns at most one hit. An exact match wins over a variant; a
// word-then-digits variant wins over a digits-then-word variant.
func Check(password string) []types.DictionaryHit {
	lower := strings.ToLower(password)

	if _, ok := topPasswords[lower]; ok {
		return []types.DictionaryHit{{Word: lower, Dict: types.DictTop100}}
	}
	if m := reWordThenDigits.FindStringSubmatch(lower); m != nil && Contains(m[1]) {
		return []types.DictionaryHit{{Word: m[1], Dict: types.DictTop100Variant}}
	}
	if m := reDigitsThenWord.FindStringSubmatch(lower); m != nil && Contains(m[1]) {
		return []types.DictionaryHit{{Word: m[1], Dict: types.DictTop100Variant}}
	}
	return []types.DictionaryHit{}
}
