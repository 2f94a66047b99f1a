package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

func TestBuiltinTagsAreKnown(t *testing.T) {
	for _, p := range Builtin().All() {
		for _, tag := range p.SpecialRequirements {
			_, ok := LookupRequirement(tag)
			assert.True(t, ok, "%s: %s", p.Name, tag)
		}
	}
	assert.Len(t, KnownRequirements(), 20)
}

func TestSequentialChars(t *testing.T) {
	req, _ := LookupRequirement(ReqNoSequentialChars)
	cases := []struct {
		pw     string
		status types.Status
	}{
		{"abc", types.StatusFail},
		{"xYz!", types.StatusFail},
		{"qq987qq", types.StatusFail},
		{"пароль-эюя", types.StatusFail},
		{"Мир-то", types.StatusPass},
		{"Tr0ub4dor&3", types.StatusPass},
		{"", types.StatusPass},
	}
	for _, tc := range cases {
		got := req.Evaluate(Input{Password: tc.pw})
		assert.Equal(t, tc.status, got.Status, tc.pw)
		assert.Equal(t, "No sequential characters", got.Rule)
	}
	got := req.Evaluate(Input{Password: "q-CDE-f"})
	assert.Contains(t, got.Details, `"cde"`)
}

func TestPersonalInfo(t *testing.T) {
	req, _ := LookupRequirement(ReqNoPersonalInfo)
	for _, pw := range []string{"Ivan15.03.1990", "born-1/2/85", "25121999x", "HappyMarch!", "декабрь2020"} {
		assert.Equal(t, types.StatusWarn, req.Evaluate(Input{Password: pw}).Status, pw)
	}
	for _, pw := range []string{"Tr0ub4dor&3", "correct horse", ""} {
		assert.Equal(t, types.StatusPass, req.Evaluate(Input{Password: pw}).Status, pw)
	}
}

func TestDictionaryWords(t *testing.T) {
	req, _ := LookupRequirement(ReqNoDictionaryWords)
	got := req.Evaluate(Input{Password: "dragon1", DictionaryHits: []types.DictionaryHit{{Word: "dragon", Dict: types.DictTop100Variant}}})
	assert.Equal(t, types.StatusFail, got.Status)
	assert.Contains(t, got.Details, "dragon")
	assert.Equal(t, types.StatusPass, req.Evaluate(Input{Password: "x"}).Status)
}

func TestProcessAndUnknownTags(t *testing.T) {
	req, ok := LookupRequirement("2fa_required")
	require.True(t, ok)
	assert.Equal(t, KindProcess, req.Kind)
	got := req.Evaluate(Input{Password: "anything"})
	assert.Equal(t, types.StatusPass, got.Status)
	assert.Equal(t, processDetails, got.Details)

	req, ok = LookupRequirement("custom_tag")
	assert.False(t, ok)
	got = req.Evaluate(Input{})
	assert.Equal(t, "custom_tag", got.Rule)
	assert.Equal(t, types.StatusPass, got.Status)
}
