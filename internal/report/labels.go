package report

import (
	"fmt"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/patterns"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

const (
	productName = "Password & Entropy Lab"
	footerLocal = "All data was processed locally"
)

func check(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

func statusIcon(s types.Status) string {
	switch s {
	case types.StatusPass:
		return "✅"
	case types.StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

func colorStatus(s types.Status) string {
	switch s {
	case types.StatusPass:
		return "\x1b[32mPASS\x1b[0m" // green
	case types.StatusWarn:
		return "\x1b[33mWARN\x1b[0m" // yellow
	default:
		return "\x1b[31mFAIL\x1b[0m" // red
	}
}

func statusText(s types.Status, noColor bool) string {
	if noColor {
		return string(s)
	}
	return colorStatus(s)
}

func patternLabels(ps []types.Pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = patterns.Label(p)
	}
	return out
}

func strengthText(s types.Strength) string {
	return fmt.Sprintf("%s (%d/4)", s, int(s))
}
