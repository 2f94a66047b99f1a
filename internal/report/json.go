package report

import (
	"encoding/json"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

const utf8BOM = "\ufeff"

// JSONOptions controls WriteJSON.
type JSONOptions struct {
	// BOM prefixes the output with a UTF-8 byte order mark.
	BOM bool
}

// Normalize returns a copy of a with every free-text field in Unicode NFC.
func Normalize(a types.Assessment) types.Assessment {
	a.PasswordSample = norm.NFC.String(a.PasswordSample)
	a.PolicyName = norm.NFC.String(a.PolicyName)

	hits := make([]types.DictionaryHit, len(a.DictionaryHits))
	for i, h := range a.DictionaryHits {
		hits[i] = types.DictionaryHit{Word: norm.NFC.String(h.Word), Dict: h.Dict}
	}
	a.DictionaryHits = hits

	rules := make([]types.ComplianceRule, len(a.Compliance))
	for i, r := range a.Compliance {
		rules[i] = types.ComplianceRule{Rule: norm.NFC.String(r.Rule), Status: r.Status, Details: norm.NFC.String(r.Details)}
	}
	a.Compliance = rules

	sugg := make([]string, len(a.FixSuggestions))
	for i, s := range a.FixSuggestions {
		sugg[i] = norm.NFC.String(s)
	}
	a.FixSuggestions = sugg

	pats := make([]types.Pattern, len(a.Patterns))
	copy(pats, a.Patterns)
	a.Patterns = pats
	return a
}

// WriteJSON writes v as indented JSON. Assessments, slices and maps of
// assessments are NFC-normalized first.
func WriteJSON(w io.Writer, v any, opts JSONOptions) error {
	switch x := v.(type) {
	case types.Assessment:
		v = Normalize(x)
	case []types.Assessment:
		out := make([]types.Assessment, len(x))
		for i, a := range x {
			out[i] = Normalize(a)
		}
		v = out
	case map[string]types.Assessment:
		out := make(map[string]types.Assessment, len(x))
		for k, a := range x {
			out[k] = Normalize(a)
		}
		v = out
	}
	if opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
