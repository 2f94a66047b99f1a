package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
)

// ErrUnknownPolicy is returned when a policy name is not in the registry.
var ErrUnknownPolicy = errors.New("unknown policy")

// CategoryGroup is a category with its policies in catalog order.
type CategoryGroup struct {
	CategoryInfo
	Policies []Policy `json:"policies"`
}

// Registry is an immutable, ordered set of uniquely named policies.
type Registry struct {
	policies    []Policy
	byName      map[string]int
	defaultName string
	fingerprint string
}

var (
	validate = validator.New()
	builtin  = mustRegistry(DefaultPolicyName, builtinPolicies...)
)

func mustRegistry(defaultName string, policies ...Policy) *Registry {
	r, err := NewRegistry(defaultName, policies...)
	if err != nil {
		panic(fmt.Sprintf("policy: builtin catalog: %v", err))
	}
	return r
}

// Builtin returns the shared built-in catalog.
func Builtin() *Registry { return builtin }

// NewRegistry validates policies and builds a registry. defaultName must name
// one of them; an empty defaultName selects the first policy.
func NewRegistry(defaultName string, policies ...Policy) (*Registry, error) {
	if len(policies) == 0 {
		return nil, errors.New("policy: registry needs at least one policy")
	}
	r := &Registry{
		policies: make([]Policy, 0, len(policies)),
		byName:   make(map[string]int, len(policies)),
	}
	for _, p := range policies {
		if err := Validate(p); err != nil {
			return nil, err
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("policy %s: duplicate name", p.Name)
		}
		r.byName[p.Name] = len(r.policies)
		r.policies = append(r.policies, p.clone())
	}
	if defaultName == "" {
		defaultName = r.policies[0].Name
	}
	if _, ok := r.byName[defaultName]; !ok {
		return nil, fmt.Errorf("default %q: %w", defaultName, ErrUnknownPolicy)
	}
	r.defaultName = defaultName

	canon, err := json.Marshal(r.policies)
	if err != nil {
		return nil, fmt.Errorf("policy: fingerprint: %w", err)
	}
	r.fingerprint = fmt.Sprintf("%016x", xxhash.Sum64(canon))
	return r, nil
}

// Validate checks field constraints and requirement tags of p.
func Validate(p Policy) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("policy %s: %s", p.Name, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("policy %s: %w", p.Name, err)
	}
	for _, tag := range p.SpecialRequirements {
		if _, ok := requirements[tag]; !ok {
			return fmt.Errorf("policy %s: unknown requirement %q", p.Name, tag)
		}
	}
	return nil
}

// With returns a new registry holding r's policies followed by extra.
// r itself is not modified.
func (r *Registry) With(extra ...Policy) (*Registry, error) {
	if len(extra) == 0 {
		return r, nil
	}
	return NewRegistry(r.defaultName, append(r.All(), extra...)...)
}

// WithDefault returns a copy of r whose default is name.
func (r *Registry) WithDefault(name string) (*Registry, error) {
	if name == "" || name == r.defaultName {
		return r, nil
	}
	return NewRegistry(name, r.All()...)
}

// All returns a copy of every policy in catalog order.
func (r *Registry) All() []Policy {
	out := make([]Policy, len(r.policies))
	for i, p := range r.policies {
		out[i] = p.clone()
	}
	return out
}

// Names returns the policy names in catalog order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.policies))
	for i, p := range r.policies {
		out[i] = p.Name
	}
	return out
}

// Len returns the number of policies.
func (r *Registry) Len() int { return len(r.policies) }

// Lookup finds a policy by exact name.
func (r *Registry) Lookup(name string) (Policy, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Policy{}, false
	}
	return r.policies[i].clone(), true
}

// Resolve is Lookup with an error; an empty name resolves to the default.
func (r *Registry) Resolve(name string) (Policy, error) {
	if name == "" {
		return r.Default(), nil
	}
	p, ok := r.Lookup(name)
	if !ok {
		return Policy{}, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
	return p, nil
}

// Default returns the default policy.
func (r *Registry) Default() Policy {
	return r.policies[r.byName[r.defaultName]].clone()
}

// DefaultName returns the name of the default policy.
func (r *Registry) DefaultName() string { return r.defaultName }

// Categories returns every category in display order with its policies.
func (r *Registry) Categories() []CategoryGroup {
	out := make([]CategoryGroup, 0, len(categoryOrder))
	for _, info := range categoryOrder {
		g, _ := r.Category(info.Category)
		out = append(out, g)
	}
	return out
}

// Category returns the group for c. The bool is false for an unknown category.
func (r *Registry) Category(c Category) (CategoryGroup, bool) {
	for _, info := range categoryOrder {
		if info.Category != c {
			continue
		}
		g := CategoryGroup{CategoryInfo: info, Policies: []Policy{}}
		for _, p := range r.policies {
			if p.Category == c {
				g.Policies = append(g.Policies, p.clone())
			}
		}
		return g, true
	}
	return CategoryGroup{}, false
}

// Fingerprint identifies the catalog revision: xxhash64 over its canonical JSON.
func (r *Registry) Fingerprint() string { return r.fingerprint }
