package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// WriteMarkdown writes a GitHub-flavored Markdown report with one section
// per assessment.
func WriteMarkdown(w io.Writer, as ...types.Assessment) error {
	md := markdown.NewMarkdown(w)
	md.H1(productName + " Report")
	md.PlainText("")

	for _, a := range as {
		writeMarkdownAssessment(md, a)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by %s. %s.*", productName, footerLocal)
	return md.Build()
}

func writeMarkdownAssessment(md *markdown.Markdown, a types.Assessment) {
	md.H2(a.PolicyName)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Sample", "`" + a.PasswordSample + "`"},
			{"Length", strconv.Itoa(a.Length)},
			{"Entropy", fmt.Sprintf("%v bits", a.EntropyBits)},
			{"Strength", strengthText(a.Strength)},
			{"Classes", fmt.Sprintf("lower %s, upper %s, digits %s, special %s",
				check(a.Classes.Lower), check(a.Classes.Upper), check(a.Classes.Digits), check(a.Classes.Special))},
			{"Assessed", a.Timestamp.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	writeMarkdownAlert(md, a)

	md.H3("Compliance")
	md.PlainText("")
	rows := make([][]string, len(a.Compliance))
	for i, r := range a.Compliance {
		details := r.Details
		if details == "" {
			details = "-"
		}
		rows[i] = []string{statusIcon(r.Status) + " " + string(r.Status), r.Rule, details}
	}
	md.Table(markdown.TableSet{Header: []string{"Status", "Rule", "Details"}, Rows: rows})
	md.PlainText("")

	if len(a.Patterns) > 0 {
		md.H3("Problems")
		md.PlainText("")
		md.BulletList(patternLabels(a.Patterns)...)
		md.PlainText("")
	}
	if len(a.FixSuggestions) > 0 {
		md.H3("Recommendations")
		md.PlainText("")
		md.BulletList(a.FixSuggestions...)
		md.PlainText("")
	}
}

func writeMarkdownAlert(md *markdown.Markdown, a types.Assessment) {
	var fails, warns int
	for _, r := range a.Compliance {
		switch r.Status {
		case types.StatusFail:
			fails++
		case types.StatusWarn:
			warns++
		}
	}
	switch {
	case fails > 0:
		md.Cautionf("The password does not satisfy %s: %d rule(s) failed.", a.PolicyName, fails)
	case warns > 0:
		md.Warningf("The password satisfies %s with %d warning(s).", a.PolicyName, warns)
	case len(a.DictionaryHits) > 0:
		md.Importantf("The password resembles a common password (%s).", a.DictionaryHits[0].Display())
	default:
		md.Tip("The password satisfies every rule of the policy.")
	}
	md.PlainText("")
}
