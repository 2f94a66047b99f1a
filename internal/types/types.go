package types

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the outcome of a single compliance rule.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Pattern tags a weak structural pattern found in a password.
type Pattern string

const (
	PatternRepeat      Pattern = "repeat"
	PatternKeyboardSeq Pattern = "keyboard_seq"
	PatternNumericSeq  Pattern = "numeric_seq"
	PatternYear        Pattern = "year"
	PatternSingleChar  Pattern = "single_char"
	PatternOnlyDigits  Pattern = "only_digits"
)

// Dictionary matching strategies reported in DictionaryHit.Dict.
const (
	DictTop100        = "top100"
	DictTop100Variant = "top100_variant"
)

// Strength is a coarse 0..4 rating derived from entropy and length.
type Strength int

const (
	StrengthVeryWeak Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthVeryWeak:
		return "Very weak"
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "Very strong"
	default:
		return "Unknown"
	}
}

// CharacterClasses records which character classes occur in a password.
type CharacterClasses struct {
	Lower   bool `json:"lower"`
	Upper   bool `json:"upper"`
	Digits  bool `json:"digits"`
	Special bool `json:"special"`
}

// Count returns how many of the four classes are present.
func (c CharacterClasses) Count() int {
	n := 0
	for _, b := range []bool{c.Lower, c.Upper, c.Digits, c.Special} {
		if b {
			n++
		}
	}
	return n
}

// DictionaryHit identifies the matched dictionary word and the strategy that found it.
type DictionaryHit struct {
	Word string `json:"word"`
	Dict string `json:"dict"`
}

// Display is the quoted word for human-readable output. An exact hit is the
// lower-cased password, so it is masked like the password sample.
func (h DictionaryHit) Display() string {
	if h.Dict == DictTop100 {
		return strconv.Quote(strings.Repeat("•", utf8.RuneCountInString(h.Word)))
	}
	return strconv.Quote(h.Word)
}

// ComplianceRule is the evaluation of one enforced aspect of a policy.
type ComplianceRule struct {
	Rule    string `json:"rule"`
	Status  Status `json:"status"`
	Details string `json:"details,omitempty"`
}

// Assessment is the full, serializable result of assessing one password
// against one policy. It never carries the password itself, only a masked sample.
type Assessment struct {
	PasswordSample string           `json:"password_sample"`
	Length         int              `json:"length"`
	Classes        CharacterClasses `json:"classes"`
	EntropyBits    float64          `json:"entropy_bits"`
	Strength       Strength         `json:"strength"`
	Patterns       []Pattern        `json:"patterns"`
	DictionaryHits []DictionaryHit  `json:"dictionary_hits"`
	Compliance     []ComplianceRule `json:"compliance"`
	FixSuggestions []string         `json:"fix_suggestions"`
	PolicyName     string           `json:"policy_name"`
	Timestamp      time.Time        `json:"timestamp"`
}

// Verdict folds the compliance list into one status: any FAIL wins, then any WARN.
func (a Assessment) Verdict() Status {
	verdict := StatusPass
	for _, r := range a.Compliance {
		switch r.Status {
		case StatusFail:
			return StatusFail
		case StatusWarn:
			verdict = StatusWarn
		}
	}
	return verdict
}

// HasPattern reports whether p was detected.
func (a Assessment) HasPattern(p Pattern) bool {
	for _, x := range a.Patterns {
		if x == p {
			return true
		}
	}
	return false
}
