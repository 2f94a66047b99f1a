// Package entropy estimates password entropy in bits from alphabet size and
// length, discounted by multiplicative penalties for weak patterns and
// dictionary hits.
package entropy

import (
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Per-class alphabet contributions.
const (
	lowerSize    = 26
	upperSize    = 26
	digitSize    = 10
	specialSize  = 33
	cyrillicSize = 33

	dictionaryPenalty = 0.5
	longBonusLength   = 16
	longBonus         = 1.1
	veryLongLength    = 20
	veryLongBonus     = 1.2
)

var reCyrillic = regexp.MustCompile(`(?i)[а-яё]`)

var penalties = map[types.Pattern]float64{
	types.PatternRepeat:      0.7,
	types.PatternKeyboardSeq: 0.6,
	types.PatternNumericSeq:  0.7,
	types.PatternYear:        0.8,
	types.PatternSingleChar:  0.1,
	types.PatternOnlyDigits:  0.8,
}

// Penalty returns the multiplier applied for p, or 1 for unknown patterns.
func Penalty(p types.Pattern) float64 {
	if f, ok := penalties[p]; ok {
		return f
	}
	return 1
}

// AlphabetSize sums the contributions of the classes present. Any Cyrillic
// letter adds its own block regardless of the lower/upper flags. The result
// is never below 1.
func AlphabetSize(password string, classes types.CharacterClasses) int {
	size := 0
	if classes.Lower {
		size += lowerSize
	}
	if classes.Upper {
		size += upperSize
	}
	if classes.Digits {
		size += digitSize
	}
	if classes.Special {
		size += specialSize
	}
	if reCyrillic.MatchString(password) {
		size += cyrillicSize
	}
	if size == 0 {
		size = 1
	}
	return size
}

// Estimate returns the entropy estimate in bits, non-negative and rounded to
// one decimal place.
func Estimate(password string, classes types.CharacterClasses, patterns []types.Pattern, hits []types.DictionaryHit) float64 {
	length := utf8.RuneCountInString(password)
	bits := float64(length) * math.Log2(float64(AlphabetSize(password, classes)))

	for _, p := range patterns {
		bits *= Penalty(p)
	}
	if len(hits) > 0 {
		bits *= dictionaryPenalty
	}

	// The >=20 tier sits behind the >=16 tier and is never selected.
	switch {
	case length >= longBonusLength:
		bits *= longBonus
	case length >= veryLongLength:
		bits *= veryLongBonus
	}

	if bits < 0 {
		bits = 0
	}
	return Round1(bits)
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
