package engine

import (
	"fmt"
	"strconv"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// entropyWarnMargin is how far below the threshold an estimate still warns.
const entropyWarnMargin = 10.0

type measured struct {
	password string
	length   int
	classes  types.CharacterClasses
	entropy  float64
	hits     []types.DictionaryHit
}

func bits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusIf(ok bool, otherwise types.Status) types.Status {
	if ok {
		return types.StatusPass
	}
	return otherwise
}

// evaluate produces one rule per enforced aspect of p, in a fixed order:
// min length, max length, class diversity, entropy, dictionary, then each
// special requirement.
func evaluate(m measured, p policy.Policy) []types.ComplianceRule {
	out := make([]types.ComplianceRule, 0, 5+len(p.SpecialRequirements))

	out = append(out, types.ComplianceRule{
		Rule:    fmt.Sprintf("Minimum length: %d characters", p.MinLength),
		Status:  statusIf(m.length >= p.MinLength, types.StatusFail),
		Details: fmt.Sprintf("%d of %d characters", m.length, p.MinLength),
	})

	if p.MaxLength > 0 {
		out = append(out, types.ComplianceRule{
			Rule:    fmt.Sprintf("Maximum length: %d characters", p.MaxLength),
			Status:  statusIf(m.length <= p.MaxLength, types.StatusWarn),
			Details: fmt.Sprintf("%d of at most %d characters", m.length, p.MaxLength),
		})
	}

	if m.length < policy.ShortPasswordLength && p.RequireClassesIfShort {
		n := m.classes.Count()
		st := types.StatusFail
		switch {
		case n >= 3:
			st = types.StatusPass
		case n == 2:
			st = types.StatusWarn
		}
		out = append(out, types.ComplianceRule{
			Rule:    "Character diversity: at least 3 of 4 classes",
			Status:  st,
			Details: fmt.Sprintf("%d of 4 classes present", n),
		})
	}

	threshold := p.EffectiveMinEntropy()
	est := types.StatusFail
	switch {
	case m.entropy >= threshold:
		est = types.StatusPass
	case m.entropy >= threshold-entropyWarnMargin:
		est = types.StatusWarn
	}
	out = append(out, types.ComplianceRule{
		Rule:    fmt.Sprintf("Entropy: at least %s bits", bits(threshold)),
		Status:  est,
		Details: fmt.Sprintf("%s of %s bits", bits(m.entropy), bits(threshold)),
	})

	if p.ForbidTopPasswords {
		details := "not found in the breached password list"
		if len(m.hits) > 0 {
			details = fmt.Sprintf("matches %s (%s)", m.hits[0].Display(), m.hits[0].Dict)
		}
		out = append(out, types.ComplianceRule{
			Rule:    "Not a common password",
			Status:  statusIf(len(m.hits) == 0, types.StatusFail),
			Details: details,
		})
	}

	in := policy.Input{Password: m.password, DictionaryHits: m.hits}
	for _, tag := range p.SpecialRequirements {
		req, _ := policy.LookupRequirement(tag)
		out = append(out, req.Evaluate(in))
	}
	return out
}
