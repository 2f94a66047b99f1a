package policy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Content requirement tags.
const (
	ReqNoSequentialChars = "no_sequential_chars"
	ReqNoPersonalInfo    = "no_personal_info"
	ReqNoDictionaryWords = "no_dictionary_words"
)

// RequirementKind tells content checks apart from organizational controls.
type RequirementKind string

const (
	KindContent RequirementKind = "content"
	KindProcess RequirementKind = "process"
)

const processDetails = "organizational control, not verifiable from the password"

// Input is what a requirement check may look at.
type Input struct {
	Password       string
	DictionaryHits []types.DictionaryHit
}

// Requirement describes one special requirement tag.
type Requirement struct {
	Tag         string
	Description string
	Kind        RequirementKind
	Check       func(in Input) (types.Status, string)
}

// Evaluate runs the requirement against in and returns a compliance rule.
func (r Requirement) Evaluate(in Input) types.ComplianceRule {
	if r.Check == nil {
		return types.ComplianceRule{Rule: r.Description, Status: types.StatusPass, Details: processDetails}
	}
	st, details := r.Check(in)
	return types.ComplianceRule{Rule: r.Description, Status: st, Details: details}
}

var (
	reSequential   = regexp.MustCompile(sequentialPattern())
	reMonthName    = regexp.MustCompile(`(?i)(january|february|march|april|june|july|august|september|october|november|december|январ|феврал|март|апрел|июн|июл|август|сентябр|октябр|ноябр|декабр)`)
	reDottedDate   = regexp.MustCompile(`(0?[1-9]|[12][0-9]|3[01])[./-](0?[1-9]|1[0-2])[./-]([0-9]{4}|[0-9]{2})`)
	reCompactDate  = regexp.MustCompile(`(0[1-9]|[12][0-9]|3[01])(0[1-9]|1[0-2])(19|20)[0-9]{2}`)
	personalChecks = []*regexp.Regexp{reDottedDate, reCompactDate, reMonthName}
)

// sequentialPattern builds an alternation of every 3-rune ascending and
// descending run over the Latin, Cyrillic and digit alphabets.
func sequentialPattern() string {
	alphabets := []string{"abcdefghijklmnopqrstuvwxyz", "абвгдеёжзийклмнопрстуфхцчшщъыьэюя", "0123456789"}
	var parts []string
	for _, a := range alphabets {
		r := []rune(a)
		for i := 0; i+3 <= len(r); i++ {
			parts = append(parts, string(r[i:i+3]), string([]rune{r[i+2], r[i+1], r[i]}))
		}
	}
	return "(?i)(" + strings.Join(parts, "|") + ")"
}

func checkSequential(in Input) (types.Status, string) {
	if m := reSequential.FindString(in.Password); m != "" {
		return types.StatusFail, fmt.Sprintf("sequential fragment %q", strings.ToLower(m))
	}
	return types.StatusPass, "no sequential runs of 3"
}

func checkPersonalInfo(in Input) (types.Status, string) {
	for _, re := range personalChecks {
		if re.MatchString(in.Password) {
			return types.StatusWarn, "looks like a date or month name"
		}
	}
	return types.StatusPass, "no dates or month names found"
}

func checkDictionaryWords(in Input) (types.Status, string) {
	if len(in.DictionaryHits) > 0 {
		return types.StatusFail, "contains " + in.DictionaryHits[0].Display()
	}
	return types.StatusPass, "no dictionary words"
}

func process(tag, description string) Requirement {
	return Requirement{Tag: tag, Description: description, Kind: KindProcess}
}

var requirements = map[string]Requirement{
	ReqNoSequentialChars: {Tag: ReqNoSequentialChars, Description: "No sequential characters", Kind: KindContent, Check: checkSequential},
	ReqNoPersonalInfo:    {Tag: ReqNoPersonalInfo, Description: "No personal information", Kind: KindContent, Check: checkPersonalInfo},
	ReqNoDictionaryWords: {Tag: ReqNoDictionaryWords, Description: "No dictionary words", Kind: KindContent, Check: checkDictionaryWords},

	"quarterly_change":           process("quarterly_change", "Change every quarter"),
	"no_reuse_last_4":            process("no_reuse_last_4", "Do not reuse the last 4 passwords"),
	"complexity_requirements":    process("complexity_requirements", "Windows complexity requirements"),
	"account_lockout_protection": process("account_lockout_protection", "Account lockout protection"),
	"2fa_required":               process("2fa_required", "Two-factor authentication required"),
	"session_management":         process("session_management", "Session management"),
	"regular_rotation":           process("regular_rotation", "Regular rotation"),
	"multi_factor_auth":          process("multi_factor_auth", "Multi-factor authentication"),
	"transaction_signing":        process("transaction_signing", "Transaction signing"),
	"time_based_tokens":          process("time_based_tokens", "Time-based tokens"),
	"fraud_detection":            process("fraud_detection", "Fraud detection"),
	"audit_trail":                process("audit_trail", "Audit trail"),
	"risk_assessment":            process("risk_assessment", "Risk assessment"),
	"incident_response":          process("incident_response", "Incident response"),
	"data_portability":           process("data_portability", "Data portability"),
	"right_to_erasure":           process("right_to_erasure", "Right to erasure"),
	"consent_management":         process("consent_management", "Consent management"),
}

// LookupRequirement returns the requirement for tag. Unknown tags yield a
// placeholder whose rule text is the tag itself and which always passes.
func LookupRequirement(tag string) (Requirement, bool) {
	if r, ok := requirements[tag]; ok {
		return r, true
	}
	return Requirement{Tag: tag, Description: tag, Kind: KindProcess}, false
}

// KnownRequirements returns every registered tag, sorted.
func KnownRequirements() []string {
	tags := make([]string, 0, len(requirements))
	for t := range requirements {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
