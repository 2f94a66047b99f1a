package patterns

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

const (
	keyboardEN = "qwertyuiopasdfghjklzxcvbnm"
	keyboardRU = "йцукенгшщзхъфывапролджэячсмитьбю"
	digitSeq   = "0123456789"

	keyboardWindow = 4
	minNumericRun  = 4
	minRepeatRun   = 3

	firstYear = 1990
	lastYear  = 2025
)

var (
	reDigitRun   = regexp.MustCompile(`[0-9]+`)
	reOnlyDigits = regexp.MustCompile(`^[0-9]+$`)
)

// Labels maps each pattern to a short human-readable label for renderers.
var Labels = map[types.Pattern]string{
	types.PatternRepeat:      "Repeated characters",
	types.PatternKeyboardSeq: "Keyboard sequence",
	types.PatternNumericSeq:  "Numeric sequence",
	types.PatternYear:        "Contains a year (1990-2025)",
	types.PatternSingleChar:  "Single character",
	types.PatternOnlyDigits:  "Digits only",
}

// Label returns the display label for p, falling back to the raw tag.
func Label(p types.Pattern) string {
	if l, ok := Labels[p]; ok {
		return l
	}
	return string(p)
}

// Detect returns the weak patterns found in password, deduplicated and in
// detection order. The empty string is reported as single_char.
func Detect(password string) []types.Pattern {
	out := make([]types.Pattern, 0, 4)
	seen := map[types.Pattern]bool{}
	add := func(p types.Pattern) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	runes := []rune(password)
	lower := []rune(strings.ToLower(password))

	if hasRepeat(runes) {
		add(types.PatternRepeat)
	}
	if hasKeyboardWalk(lower, keyboardEN) {
		add(types.PatternKeyboardSeq)
	}
	if hasKeyboardWalk(lower, keyboardRU) {
		add(types.PatternKeyboardSeq)
	}
	if hasNumericSequence(password) {
		add(types.PatternNumericSeq)
	}
	if hasYear(password) {
		add(types.PatternYear)
	}
	if isSingleChar(runes) {
		add(types.PatternSingleChar)
	}
	if reOnlyDigits.MatchString(password) {
		add(types.PatternOnlyDigits)
	}
	return out
}

func hasRepeat(runes []rune) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= minRepeatRun {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

func hasKeyboardWalk(lower []rune, layout string) bool {
	for i := 0; i+keyboardWindow <= len(lower); i++ {
		window := lower[i : i+keyboardWindow]
		if strings.Contains(layout, string(window)) || strings.Contains(layout, reverse(window)) {
			return true
		}
	}
	return false
}

func hasNumericSequence(password string) bool {
	for _, run := range reDigitRun.FindAllString(password, -1) {
		if len(run) < minNumericRun {
			continue
		}
		if strings.Contains(digitSeq, run) || strings.Contains(digitSeq, reverse([]rune(run))) {
			return true
		}
	}
	return false
}

func hasYear(password string) bool {
	for y := firstYear; y <= lastYear; y++ {
		if strings.Contains(password, strconv.Itoa(y)) {
			return true
		}
	}
	return false
}

func isSingleChar(runes []rune) bool {
	for _, r := range runes {
		if r != runes[0] {
			return false
		}
	}
	return true
}

func reverse(rs []rune) string {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return string(out)
}
