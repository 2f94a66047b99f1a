package engine

import (
	"fmt"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

var patternHints = map[types.Pattern]string{
	types.PatternRepeat:      "Avoid repeated characters (aaa, 111)",
	types.PatternKeyboardSeq: "Avoid keyboard sequences (qwerty, йцукен)",
	types.PatternNumericSeq:  "Avoid numeric sequences (123456, 987654)",
	types.PatternYear:        "Do not include years (1990-2025)",
	types.PatternSingleChar:  "Use more than one distinct character",
	types.PatternOnlyDigits:  "Add letters and symbols, not only digits",
}

const (
	hintDictionary = "Do not use common passwords from breach lists"
	hintLower      = "Add lowercase letters"
	hintUpper      = "Add uppercase letters"
	hintDigits     = "Add digits"
	hintSpecial    = "Add special characters (!@#$%^&*)"
	hintLonger     = "Consider 16+ characters for better security"
)

func suggest(m measured, patterns []types.Pattern, p policy.Policy) []string {
	out := []string{}
	if m.length < p.MinLength {
		out = append(out, fmt.Sprintf("Increase length to at least %d characters", p.MinLength))
	}
	if len(m.hits) > 0 {
		out = append(out, hintDictionary)
	}
	for _, pt := range patterns {
		if h, ok := patternHints[pt]; ok {
			out = append(out, h)
		}
	}
	if m.length < policy.ShortPasswordLength && p.RequireClassesIfShort {
		if !m.classes.Lower {
			out = append(out, hintLower)
		}
		if !m.classes.Upper {
			out = append(out, hintUpper)
		}
		if !m.classes.Digits {
			out = append(out, hintDigits)
		}
		if !m.classes.Special {
			out = append(out, hintSpecial)
		}
	}
	if len(out) == 0 && m.length < policy.ShortPasswordLength {
		out = append(out, hintLonger)
	}
	return out
}
