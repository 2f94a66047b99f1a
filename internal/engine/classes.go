package engine

import (
	"regexp"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// SpecialChars is the fixed punctuation set counted as the special class.
const SpecialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~`"

var (
	reLower = regexp.MustCompile(`[a-zа-яё]`)
	reUpper = regexp.MustCompile(`[A-ZА-ЯЁ]`)
	reDigit = regexp.MustCompile(`[0-9]`)
)

// Classify reports which character classes occur in password.
func Classify(password string) types.CharacterClasses {
	return types.CharacterClasses{
		Lower:   reLower.MatchString(password),
		Upper:   reUpper.MatchString(password),
		Digits:  reDigit.MatchString(password),
		Special: strings.ContainsAny(password, SpecialChars),
	}
}
