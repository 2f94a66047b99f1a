package core

import (
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Assessment     = types.Assessment
	ComplianceRule = types.ComplianceRule
	Status         = types.Status
	Strength       = types.Strength
	Policy         = policy.Policy
	CategoryGroup  = policy.CategoryGroup
)

// Verdicts.
const (
	StatusPass = types.StatusPass
	StatusWarn = types.StatusWarn
	StatusFail = types.StatusFail
)

// ErrUnknownPolicy is returned by Assess for a name not in the catalog.
var ErrUnknownPolicy = policy.ErrUnknownPolicy

// DefaultPolicyName is used when Assess is given an empty name.
const DefaultPolicyName = policy.DefaultPolicyName

// Assess evaluates password against the named built-in policy. An empty name
// selects DefaultPolicyName.
func Assess(password, policyName string) (Assessment, error) {
	p, err := policy.Builtin().Resolve(policyName)
	if err != nil {
		return Assessment{}, err
	}
	return engine.Assess(password, &p), nil
}

// AssessAll evaluates password against every built-in policy, keyed by name.
func AssessAll(password string) map[string]Assessment {
	return engine.AssessAll(password)
}

// Policies returns the built-in catalog in display order. The slice and its
// policies are copies.
func Policies() []Policy { return policy.Builtin().All() }

// Categories returns the catalog grouped by category, in display order.
func Categories() []CategoryGroup { return policy.Builtin().Categories() }
