package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// PrintText writes the plain-text report. It is also the fallback when a
// richer format cannot be produced.
func PrintText(w io.Writer, a types.Assessment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - ANALYSIS REPORT\n\n", strings.ToUpper(productName))
	fmt.Fprintf(&b, "Date: %s\n", a.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Policy: %s\n", a.PolicyName)
	fmt.Fprintf(&b, "Sample: %s\n\n", a.PasswordSample)

	b.WriteString("KEY METRICS:\n")
	fmt.Fprintf(&b, "• Length: %d characters\n", a.Length)
	fmt.Fprintf(&b, "• Entropy: %v bits\n", a.EntropyBits)
	fmt.Fprintf(&b, "• Strength: %s\n\n", strengthText(a.Strength))

	b.WriteString("CHARACTER CLASSES:\n")
	fmt.Fprintf(&b, "• Lowercase: %s\n", check(a.Classes.Lower))
	fmt.Fprintf(&b, "• Uppercase: %s\n", check(a.Classes.Upper))
	fmt.Fprintf(&b, "• Digits: %s\n", check(a.Classes.Digits))
	fmt.Fprintf(&b, "• Special: %s\n\n", check(a.Classes.Special))

	fmt.Fprintf(&b, "POLICY COMPLIANCE (%s):\n", a.Verdict())
	for _, r := range a.Compliance {
		fmt.Fprintf(&b, "• %s: %s", r.Status, r.Rule)
		if r.Details != "" {
			fmt.Fprintf(&b, " (%s)", r.Details)
		}
		b.WriteByte('\n')
	}

	if len(a.Patterns) > 0 || len(a.DictionaryHits) > 0 {
		b.WriteString("\nPROBLEMS FOUND:\n")
		for _, l := range patternLabels(a.Patterns) {
			fmt.Fprintf(&b, "• %s\n", l)
		}
		for _, h := range a.DictionaryHits {
			fmt.Fprintf(&b, "• Common password %s (%s)\n", h.Display(), h.Dict)
		}
	}

	if len(a.FixSuggestions) > 0 {
		b.WriteString("\nRECOMMENDATIONS:\n")
		for _, s := range a.FixSuggestions {
			fmt.Fprintf(&b, "• %s\n", s)
		}
	}

	fmt.Fprintf(&b, "\nGenerated by %s\n%s\n", productName, footerLocal)
	_, err := io.WriteString(w, b.String())
	return err
}
