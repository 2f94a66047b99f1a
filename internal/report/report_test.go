package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

const secret = "Zq!3vR8"

var testNow = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

// sample fails NIST on length, diversity, entropy and the dictionary.
func sample(t *testing.T) types.Assessment {
	t.Helper()
	return engine.New(engine.Config{Now: testNow}).Assess("abc123", nil)
}

// masked assesses a short password that matches no dictionary entry, so any
// occurrence of it in output is a leak.
func masked(t *testing.T) types.Assessment {
	t.Helper()
	return engine.New(engine.Config{Now: testNow}).Assess(secret, nil)
}

func strong(t *testing.T) types.Assessment {
	t.Helper()
	return engine.New(engine.Config{}).Assess("Xk9#mQ2$vL7!pR4&nZ8w", nil)
}

func assertNoSecret(t *testing.T, out string) {
	t.Helper()
	if strings.Contains(out, secret) {
		t.Fatalf("output leaks the password: %q", out)
	}
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintText(&buf, sample(t)))
	out := buf.String()
	for _, want := range []string{
		"PASSWORD & ENTROPY LAB - ANALYSIS REPORT",
		"Policy: NIST_800_63B_MODERATE",
		"Sample: ••••••",
		"• Length: 6 characters",
		"POLICY COMPLIANCE (FAIL):",
		"• FAIL: Minimum length: 12 characters (6 of 12 characters)",
		"RECOMMENDATIONS:",
		"All data was processed locally",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in text report; got: %q", want, out)
		}
	}

	buf.Reset()
	require.NoError(t, PrintText(&buf, masked(t)))
	assertNoSecret(t, buf.String())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sample(t), PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "Verdict: FAIL")
	assert.Contains(t, out, "Minimum length: 12 characters")
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "Suggestions:")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintTable_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, strong(t), PrintOptions{}))
	assert.Contains(t, buf.String(), "\x1b[32mPASS")
}

func TestPrintMatrix(t *testing.T) {
	all := engine.AssessAll("Tr0ub4dor&3")
	var buf bytes.Buffer
	require.NoError(t, PrintMatrix(&buf, all, policy.Builtin().Names(), PrintOptions{NoColor: true}))
	out := buf.String()
	for _, name := range policy.Builtin().Names() {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "BASIC_SECURITY"), strings.Index(out, "GDPR_COMPLIANCE_EU"))
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	as := []types.Assessment{sample(t), strong(t)}
	require.NoError(t, PrintBatch(&buf, as, PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "Assessed: 2 (pass: 1, warn: 0, fail: 1)")
	assert.Contains(t, out, "••••••")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, nil, PrintOptions{NoColor: true}))
	assert.Equal(t, "No audit records.\n", buf.String())

	buf.Reset()
	rec := audit.CreateRecord(masked(t), "cafe", "assess")
	require.NoError(t, PrintHistory(&buf, []audit.Record{rec}, PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "assess")
	assert.Contains(t, out, policy.DefaultPolicyName)
	assert.Contains(t, out, rec.Sample)
	assertNoSecret(t, out)
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintCatalog(&buf, policy.Builtin().Categories()))
	out := buf.String()
	assert.Contains(t, out, "For yourself")
	assert.Contains(t, out, "By region")
	assert.Contains(t, out, "MILITARY_GRADE_SECURITY")
}

func TestWriteJSON_RoundTripAndNoNulls(t *testing.T) {
	a := strong(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, a, JSONOptions{}))
	body := buf.String()
	assert.Contains(t, body, `"password_sample"`)
	assert.Contains(t, body, `"patterns": []`)
	assert.Contains(t, body, `"dictionary_hits": []`)
	assert.NotContains(t, body, "null")

	var back types.Assessment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, a.EntropyBits, back.EntropyBits)
	assert.Equal(t, a.Compliance, back.Compliance)
	assert.True(t, a.Timestamp.Equal(back.Timestamp))
}

func TestWriteJSON_BOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, masked(t), JSONOptions{BOM: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assertNoSecret(t, buf.String())
}

func TestNormalize_NFC(t *testing.T) {
	a := types.Assessment{
		PolicyName:     "CAFE\u0301",
		FixSuggestions: []string{"e\u0301"},
		Compliance:     []types.ComplianceRule{{Rule: "re\u0301gle", Status: types.StatusPass}},
	}
	n := Normalize(a)
	assert.Equal(t, "CAF\u00c9", n.PolicyName)
	assert.Equal(t, []string{"\u00e9"}, n.FixSuggestions)
	assert.Equal(t, "r\u00e9gle", n.Compliance[0].Rule)
	assert.Equal(t, "e\u0301", a.FixSuggestions[0], "input is not modified")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sample(t), strong(t), masked(t)))
	out := buf.String()
	assert.Contains(t, out, "# Password & Entropy Lab Report")
	assert.Contains(t, out, "## NIST_800_63B_MODERATE")
	assert.Contains(t, out, "[!CAUTION]")
	assert.Contains(t, out, "[!TIP]")
	assert.Contains(t, out, "Minimum length: 12 characters")
	assertNoSecret(t, out)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sample(t), masked(t)))
	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `class="metric fail"`)
	assert.Contains(t, out, "Password &amp; Entropy Lab Report")
	assertNoSecret(t, out)
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, []types.Assessment{sample(t), strong(t)}, "1.2.3", map[string]any{"catalog": "abc"}))
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Properties map[string]any `json:"properties"`
			Tool       struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "2.1.0", doc.Version)
	assert.Equal(t, "pwlab", run.Tool.Driver.Name)
	assert.Equal(t, "abc", run.Properties["catalog"])
	// abc123 fails length, entropy and dictionary and warns on diversity
	require.Len(t, run.Results, 4)
	assert.Equal(t, "minimum-length-12-characters", run.Results[0].RuleID)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "warning", run.Results[1].Level)
	for _, r := range run.Results {
		assert.Equal(t, r.RuleID, run.Tool.Driver.Rules[r.RuleIndex].ID)
	}
}

func TestRuleID(t *testing.T) {
	assert.Equal(t, "entropy-at-least-35-bits", ruleID("Entropy: at least 35 bits"))
	assert.Equal(t, "no-reuse", ruleID("  No -- reuse!! "))
}

func TestShouldFail(t *testing.T) {
	pass := strong(t)
	fail := sample(t)
	warn := types.Assessment{Compliance: []types.ComplianceRule{{Status: types.StatusPass}, {Status: types.StatusWarn}}}

	cases := []struct {
		failOn string
		as     []types.Assessment
		want   bool
	}{
		{"", []types.Assessment{fail}, true},
		{"fail", []types.Assessment{warn}, false},
		{"warn", []types.Assessment{warn}, true},
		{"WARN", []types.Assessment{pass}, false},
		{"never", []types.Assessment{fail}, false},
		{"fail", []types.Assessment{pass, fail}, true},
		{"fail", nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldFail(tc.as, tc.failOn), "failOn=%q", tc.failOn)
	}
	assert.NoError(t, ValidateFailOn("warn"))
	assert.Error(t, ValidateFailOn("sometimes"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)
	f, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestExport_FallsBackToText(t *testing.T) {
	renderHook = func(f Format) error {
		if f == FormatHTML {
			return errors.New("renderer unavailable")
		}
		return nil
	}
	defer func() { renderHook = nil }()

	var buf bytes.Buffer
	used, err := Export(&buf, []types.Assessment{sample(t)}, FormatHTML, ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, FormatText, used)
	assert.Contains(t, buf.String(), "ANALYSIS REPORT")
	assert.NotContains(t, buf.String(), "<html")
}

func TestExport_Formats(t *testing.T) {
	as := []types.Assessment{sample(t)}
	for _, f := range Formats {
		var buf bytes.Buffer
		used, err := Export(&buf, as, f, ExportOptions{NoColor: true, Version: "dev"})
		require.NoError(t, err, f)
		assert.Equal(t, f, used)
		assert.NotEmpty(t, buf.String(), f)
		if f == FormatPDF {
			// page content is compressed
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			continue
		}
		assert.Contains(t, buf.String(), "••••••", f)
	}
}

func TestExport_MultiPolicyTable(t *testing.T) {
	all := engine.AssessAll("Tr0ub4dor&3")
	names := policy.Builtin().Names()
	as := make([]types.Assessment, 0, len(names))
	for _, n := range names {
		as = append(as, all[n])
	}
	var buf bytes.Buffer
	_, err := Export(&buf, as, FormatTable, ExportOptions{NoColor: true, Names: names})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GOOGLE_WORKSPACE")
}

func TestHighlight(t *testing.T) {
	in := `{"a": 1}`
	out := Highlight(in)
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, Highlight(""), "panic")
}

func TestExactDictionaryHitIsMasked(t *testing.T) {
	a := engine.New(engine.Config{Now: testNow}).Assess("Dragon", nil)
	require.Len(t, a.DictionaryHits, 1)
	require.Equal(t, types.DictTop100, a.DictionaryHits[0].Dict)

	var text, table, md bytes.Buffer
	require.NoError(t, PrintText(&text, a))
	require.NoError(t, PrintTable(&table, a, PrintOptions{NoColor: true}))
	require.NoError(t, WriteMarkdown(&md, a))
	for name, out := range map[string]string{"text": text.String(), "table": table.String(), "markdown": md.String()} {
		assert.NotContains(t, strings.ToLower(out), "dragon", name)
		assert.Contains(t, out, `"••••••"`, name)
	}
}

func TestVariantDictionaryHitNamesWord(t *testing.T) {
	a := engine.New(engine.Config{Now: testNow}).Assess("dragon2024", nil)
	require.Len(t, a.DictionaryHits, 1)
	require.Equal(t, types.DictTop100Variant, a.DictionaryHits[0].Dict)

	var buf bytes.Buffer
	require.NoError(t, PrintText(&buf, a))
	assert.Contains(t, buf.String(), `Common password "dragon" (top100_variant)`)
	assert.NotContains(t, buf.String(), "dragon2024")
}

func TestWritePDF(t *testing.T) {
	cyr := engine.New(engine.Config{Now: testNow}).Assess("Пароль2024!", nil)
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sample(t), cyr))
	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
	assert.Contains(t, string(out), "/BaseFont /utf8dejavu", "UTF-8 font is embedded")
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 2, "a page per assessment")
	assertNoSecret(t, string(out))
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf))
	assert.Zero(t, buf.Len())
}

func TestExport_PDFFallsBackToText(t *testing.T) {
	renderHook = func(f Format) error {
		if f == FormatPDF {
			return errors.New("font unavailable")
		}
		return nil
	}
	defer func() { renderHook = nil }()

	var buf bytes.Buffer
	used, err := Export(&buf, []types.Assessment{masked(t)}, FormatPDF, ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, FormatText, used)
	assert.False(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Contains(t, buf.String(), "ANALYSIS REPORT")
	assertNoSecret(t, buf.String())
}
