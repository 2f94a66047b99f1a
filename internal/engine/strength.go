package engine

import "github.com/Razmik-Kutinava/password-entropy-lab/internal/types"

type strengthTier struct {
	level   types.Strength
	entropy float64
	length  int
}

// Tiers are checked highest first; both thresholds must hold.
var strengthTiers = []strengthTier{
	{types.StrengthVeryStrong, 60, 16},
	{types.StrengthStrong, 45, 12},
	{types.StrengthMedium, 30, 8},
	{types.StrengthWeak, 20, 6},
}

// StrengthOf rates a password from its entropy estimate and length.
func StrengthOf(entropyBits float64, length int) types.Strength {
	for _, t := range strengthTiers {
		if entropyBits >= t.entropy && length >= t.length {
			return t.level
		}
	}
	return types.StrengthVeryWeak
}
