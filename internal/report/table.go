package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// PrintOptions tunes terminal renderers.
type PrintOptions struct {
	NoColor bool
}

// PrintTable writes a summary, the compliance table, problems and suggestions.
func PrintTable(w io.Writer, a types.Assessment, opts PrintOptions) error {
	fmt.Fprintf(w, "Policy: %s    Verdict: %s\n", a.PolicyName, statusText(a.Verdict(), opts.NoColor))
	fmt.Fprintf(w, "Sample: %s  Length: %d  Entropy: %v bits  Strength: %s\n\n",
		a.PasswordSample, a.Length, a.EntropyBits, strengthText(a.Strength))

	table := tablewriter.NewWriter(w)
	table.Header("Status", "Rule", "Details")
	rows := make([][]string, 0, len(a.Compliance))
	for _, r := range a.Compliance {
		rows = append(rows, []string{statusText(r.Status, opts.NoColor), r.Rule, r.Details})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(a.Patterns) > 0 || len(a.DictionaryHits) > 0 {
		fmt.Fprintln(w, "\nProblems:")
		for _, l := range patternLabels(a.Patterns) {
			fmt.Fprintf(w, "  - %s\n", l)
		}
		for _, h := range a.DictionaryHits {
			fmt.Fprintf(w, "  - Common password %s (%s)\n", h.Display(), h.Dict)
		}
	}
	if len(a.FixSuggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range a.FixSuggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	return nil
}

// PrintMatrix writes one row per policy, in the order of names.
func PrintMatrix(w io.Writer, results map[string]types.Assessment, names []string, opts PrintOptions) error {
	table := tablewriter.NewWriter(w)
	table.Header("Policy", "Verdict", "Entropy", "Strength", "Pass", "Warn", "Fail")
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		a, ok := results[name]
		if !ok {
			continue
		}
		var pass, warn, fail int
		for _, r := range a.Compliance {
			switch r.Status {
			case types.StatusPass:
				pass++
			case types.StatusWarn:
				warn++
			default:
				fail++
			}
		}
		rows = append(rows, []string{
			name,
			statusText(a.Verdict(), opts.NoColor),
			strconv.FormatFloat(a.EntropyBits, 'f', 1, 64),
			a.Strength.String(),
			strconv.Itoa(pass), strconv.Itoa(warn), strconv.Itoa(fail),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// PrintBatch writes one row per input line followed by the batch summary.
func PrintBatch(w io.Writer, as []types.Assessment, opts PrintOptions) error {
	table := tablewriter.NewWriter(w)
	table.Header("Line", "Sample", "Strength", "Entropy", "Verdict")
	rows := make([][]string, 0, len(as))
	for i, a := range as {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.PasswordSample,
			a.Strength.String(),
			strconv.FormatFloat(a.EntropyBits, 'f', 1, 64),
			statusText(a.Verdict(), opts.NoColor),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	s := engine.Summarize(as)
	fmt.Fprintf(w, "\nAssessed: %d (pass: %d, warn: %d, fail: %d)  Mean entropy: %v bits\n",
		s.Total, s.Verdicts["PASS"], s.Verdicts["WARN"], s.Verdicts["FAIL"], s.MeanEntropy)
	return nil
}

// PrintCatalog writes the policy catalog grouped by category.
func PrintCatalog(w io.Writer, groups []policy.CategoryGroup) error {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s - %s\n", g.Title, g.Description)
		if len(g.Policies) == 0 {
			fmt.Fprintln(w, "  (no policies)")
			continue
		}
		table := tablewriter.NewWriter(w)
		table.Header("Name", "Title", "Min len", "Max len", "Min entropy", "Requirements")
		rows := make([][]string, 0, len(g.Policies))
		for _, p := range g.Policies {
			maxLen := "-"
			if p.MaxLength > 0 {
				maxLen = strconv.Itoa(p.MaxLength)
			}
			rows = append(rows, []string{
				p.Name,
				strings.TrimSpace(p.Icon + " " + p.Title()),
				strconv.Itoa(p.MinLength),
				maxLen,
				strconv.FormatFloat(p.EffectiveMinEntropy(), 'f', -1, 64),
				strconv.Itoa(len(p.SpecialRequirements)),
			})
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// PrintHistory lists audit records, newest first, numbered from zero so the
// index can be passed back to a delete.
func PrintHistory(w io.Writer, records []audit.Record, opts PrintOptions) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No audit records.")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "Time", "Source", "Policy", "Sample", "Strength", "Entropy", "Verdict")
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(i),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			r.Policy,
			r.Sample,
			r.Strength.String(),
			strconv.FormatFloat(r.EntropyBits, 'f', 1, 64),
			statusText(r.Verdict, opts.NoColor),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
