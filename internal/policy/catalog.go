package policy

// DefaultPolicyName is the policy used when a caller does not name one.
const DefaultPolicyName = "NIST_800_63B_MODERATE"

// CategoryInfo carries the display title and description of a category.
type CategoryInfo struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// categoryOrder fixes the display order of categories.
var categoryOrder = []CategoryInfo{
	{Category: CategoryBasic, Title: "For yourself", Description: "Baseline requirements for personal use"},
	{Category: CategoryBusiness, Title: "For business", Description: "Corporate standards and business requirements"},
	{Category: CategoryExpert, Title: "Expert", Description: "Maximum protection for critical systems"},
	{Category: CategoryRegional, Title: "By region", Description: "Compliance with regional legislation"},
}

var builtinPolicies = []Policy{
	// basic
	{
		Name:                  "BASIC_SECURITY",
		DisplayName:           "Basic Security",
		Description:           "Minimum security requirements for personal use",
		Category:              CategoryBasic,
		Icon:                  "🔒",
		Color:                 "#22c55e",
		MinLength:             8,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
	},
	{
		Name:                  DefaultPolicyName,
		DisplayName:           "NIST Modern",
		Description:           "Current NIST 800-63B requirements for digital identity",
		Category:              CategoryBasic,
		Icon:                  "🇺🇸",
		Color:                 "#3b82f6",
		MinLength:             12,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            35,
	},
	{
		Name:                  "OWASP_WEB_SECURITY",
		DisplayName:           "OWASP Web",
		Description:           "OWASP standard for web applications and online services",
		Category:              CategoryBasic,
		Icon:                  "🌐",
		Color:                 "#8b5cf6",
		MinLength:             10,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            30,
		SpecialRequirements:   []string{ReqNoSequentialChars, ReqNoPersonalInfo},
	},

	// business
	{
		Name:                  "PCI_DSS_COMPLIANCE",
		DisplayName:           "PCI DSS",
		Description:           "Security standard for payment card processing systems",
		Category:              CategoryBusiness,
		Icon:                  "💳",
		Color:                 "#f59e0b",
		MinLength:             12,
		MaxLength:             25,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            40,
		SpecialRequirements:   []string{"quarterly_change", "no_reuse_last_4"},
	},
	{
		Name:                  "MICROSOFT_AD_ENTERPRISE",
		DisplayName:           "Microsoft AD",
		Description:           "Microsoft Active Directory enterprise policy",
		Category:              CategoryBusiness,
		Icon:                  "🏢",
		Color:                 "#0078d4",
		MinLength:             14,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            42,
		SpecialRequirements:   []string{"complexity_requirements", "account_lockout_protection"},
	},
	{
		Name:                  "GOOGLE_WORKSPACE",
		DisplayName:           "Google Workspace",
		Description:           "Google security policy for corporate accounts",
		Category:              CategoryBusiness,
		Icon:                  "🔍",
		Color:                 "#ea4335",
		MinLength:             12,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            38,
		SpecialRequirements:   []string{"2fa_required", "session_management"},
	},

	// expert
	{
		Name:                  "MILITARY_GRADE_SECURITY",
		DisplayName:           "Military Level",
		Description:           "Military security standards for mission-critical systems",
		Category:              CategoryExpert,
		Icon:                  "🎖️",
		Color:                 "#dc2626",
		MinLength:             16,
		MaxLength:             128,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            55,
		SpecialRequirements:   []string{ReqNoDictionaryWords, "regular_rotation", "multi_factor_auth"},
	},
	{
		Name:                  "BANKING_GRADE_SECURITY",
		DisplayName:           "Banking Grade",
		Description:           "Banking standards for financial institutions",
		Category:              CategoryExpert,
		Icon:                  "🏦",
		Color:                 "#059669",
		MinLength:             15,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            50,
		SpecialRequirements:   []string{"transaction_signing", "time_based_tokens", "fraud_detection"},
	},
	{
		Name:                  "ISO_27001_COMPLIANCE",
		DisplayName:           "ISO 27001",
		Description:           "International standard for information security management",
		Category:              CategoryExpert,
		Icon:                  "📋",
		Color:                 "#7c3aed",
		MinLength:             13,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            45,
		SpecialRequirements:   []string{"audit_trail", "risk_assessment", "incident_response"},
	},

	// regional
	{
		Name:                  "GDPR_COMPLIANCE_EU",
		DisplayName:           "GDPR Ready",
		Description:           "Compliance with the European personal data protection regulation",
		Category:              CategoryRegional,
		Icon:                  "🇪🇺",
		Color:                 "#1e40af",
		MinLength:             11,
		ForbidTopPasswords:    true,
		RequireClassesIfShort: true,
		MinEntropy:            36,
		SpecialRequirements:   []string{"data_portability", "right_to_erasure", "consent_management"},
	},
}

// CategoryOrder returns the categories in display order.
func CategoryOrder() []CategoryInfo {
	return append([]CategoryInfo(nil), categoryOrder...)
}
