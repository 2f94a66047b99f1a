package policy

// Category groups policies for display.
type Category string

const (
	CategoryBasic    Category = "basic"
	CategoryBusiness Category = "business"
	CategoryExpert   Category = "expert"
	CategoryRegional Category = "regional"
)

// DefaultMinEntropy applies when a policy leaves MinEntropy unset.
const DefaultMinEntropy = 30.0

// ShortPasswordLength is the length below which class diversity is enforced.
const ShortPasswordLength = 16

// Policy is a named, read-only set of enforcement parameters. Name, display
// name, description, icon and color are presentation only.
type Policy struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category" validate:"oneof=basic business expert regional"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`

	// MinLength is the minimum number of characters.
	MinLength int `json:"min_length" yaml:"min_length" validate:"gte=1"`
	// MaxLength is the maximum number of characters (0 = unlimited).
	MaxLength int `json:"max_length,omitempty" yaml:"max_length,omitempty" validate:"omitempty,gtefield=MinLength"`
	// ForbidTopPasswords rejects passwords found in the breached list.
	ForbidTopPasswords bool `json:"forbid_top_passwords" yaml:"forbid_top_passwords"`
	// RequireClassesIfShort enforces class diversity below ShortPasswordLength.
	RequireClassesIfShort bool `json:"require_classes_if_short" yaml:"require_classes_if_short"`
	// MinEntropy is the entropy threshold in bits (0 = DefaultMinEntropy).
	MinEntropy float64 `json:"min_entropy,omitempty" yaml:"min_entropy,omitempty" validate:"gte=0"`
	// SpecialRequirements lists requirement tags, see Requirements.
	SpecialRequirements []string `json:"special_requirements,omitempty" yaml:"special_requirements,omitempty" validate:"dive,required"`
}

// EffectiveMinEntropy returns MinEntropy, or DefaultMinEntropy when unset.
func (p Policy) EffectiveMinEntropy() float64 {
	if p.MinEntropy > 0 {
		return p.MinEntropy
	}
	return DefaultMinEntropy
}

// Title returns the display name, falling back to the policy name.
func (p Policy) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

func (p Policy) clone() Policy {
	if p.SpecialRequirements != nil {
		p.SpecialRequirements = append([]string(nil), p.SpecialRequirements...)
	}
	return p
}
