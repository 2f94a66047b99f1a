package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

func statusToLevel(s types.Status) string {
	switch s {
	case types.StatusFail:
		return "error"
	case types.StatusWarn:
		return "warning"
	default:
		return "note"
	}
}

// ruleID turns a rule description into a stable identifier.
func ruleID(rule string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(rule) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WriteSARIF writes every non-passing compliance rule as a SARIF 2.1.0 result.
// version names the tool version; props, when non-nil, is attached to the run.
func WriteSARIF(w io.Writer, as []types.Assessment, version string, props map[string]any) error {
	run := sarifRun{
		Tool:       sarifTool{Driver: sarifDriver{Name: "pwlab", Version: version}},
		Results:    []sarifResult{},
		Properties: props,
	}
	index := map[string]int{}
	for _, a := range as {
		for _, r := range a.Compliance {
			if r.Status == types.StatusPass {
				continue
			}
			id := ruleID(r.Rule)
			idx, ok := index[id]
			if !ok {
				idx = len(run.Tool.Driver.Rules)
				index[id] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{ID: id, ShortDescription: sarifMessage{Text: r.Rule}})
			}
			msg := fmt.Sprintf("%s: %s", a.PolicyName, r.Rule)
			if r.Details != "" {
				msg += " (" + r.Details + ")"
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:    id,
				RuleIndex: idx,
				Level:     statusToLevel(r.Status),
				Message:   sarifMessage{Text: msg},
				Properties: map[string]any{
					"policy":      a.PolicyName,
					"entropyBits": a.EntropyBits,
					"strength":    int(a.Strength),
					"sample":      a.PasswordSample,
				},
			})
		}
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
