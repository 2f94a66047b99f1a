package pwlab

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/config"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/tui"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/update"
)

const (
	secret   = "Zq!3vR8"
	strongPW = "Xk9#mQ2$vL7!pR4&nZ8w"
)

// isolate points config, data and the working directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NO_COLOR", "")
	xdg.Reload()
	t.Chdir(dir)
	return dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type result struct {
	stdout string
	stderr string
	code   int
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	code := 0
	orig := exitFunc
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = orig }()

	err := rootCmd.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), code: code, err: err}
}

func decodeAssessment(t *testing.T, s string) types.Assessment {
	t.Helper()
	var a types.Assessment
	require.NoError(t, json.Unmarshal([]byte(s), &a), s)
	return a
}

func TestAssess_JSONFromStdin(t *testing.T) {
	isolate(t)
	r := runCLI(t, secret+"\n", "assess", "--format", "json", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)
	assert.NotContains(t, r.stdout, secret)

	a := decodeAssessment(t, r.stdout)
	assert.Equal(t, policy.DefaultPolicyName, a.PolicyName)
	assert.Equal(t, len([]rune(secret)), a.Length)
	assert.Equal(t, types.StatusFail, a.Verdict())
}

func TestAssess_FailOnGate(t *testing.T) {
	isolate(t)

	r := runCLI(t, "abc123\n", "assess", "--format", "text")
	require.NoError(t, r.err)
	assert.Equal(t, 1, r.code, "FAIL verdict trips the default gate")

	r = runCLI(t, "abc123\n", "assess", "--format", "text", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)

	r = runCLI(t, strongPW+"\n", "assess", "--format", "text", "--fail-on", "warn")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)

	r = runCLI(t, "abc123\n", "assess", "--fail-on", "sometimes")
	assert.Error(t, r.err)
}

func TestAssess_All(t *testing.T) {
	isolate(t)
	r := runCLI(t, strongPW, "assess", "--all", "--format", "json", "--fail-on", "never")
	require.NoError(t, r.err)

	var as []types.Assessment
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &as))
	names := policy.Builtin().Names()
	require.Len(t, as, len(names))
	for i, a := range as {
		assert.Equal(t, names[i], a.PolicyName)
		assert.Equal(t, as[0].Timestamp, a.Timestamp)
	}
}

func TestAssess_AllTable(t *testing.T) {
	isolate(t)
	r := runCLI(t, strongPW, "assess", "--all", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "MILITARY_GRADE_SECURITY")
	assert.NotContains(t, r.stdout, "\x1b[", "no color when stdout is not a terminal")
}

func TestAssess_Errors(t *testing.T) {
	isolate(t)

	r := runCLI(t, "x", "assess", "--policy", "NOPE")
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, policy.ErrUnknownPolicy)

	r = runCLI(t, "x", "assess", "--policy", "BASIC_SECURITY", "--all")
	assert.Error(t, r.err)

	r = runCLI(t, "x", "assess", "--format", "docx")
	assert.Error(t, r.err)

	r = runCLI(t, "x", "assess", "x")
	assert.Error(t, r.err, "password is never accepted as an argument")
}

func TestAssess_PDF(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "report.pdf")

	r := runCLI(t, secret, "assess", "--format", "pdf", "--output", path, "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Wrote "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
	assert.NotContains(t, string(b), secret)

	r = runCLI(t, strongPW, "assess", "--all", "--format", "pdf", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "%PDF-"), "redirected stdout gets the document")
}

func TestAssess_OutputFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "report.md")

	r := runCLI(t, secret, "assess", "--format", "md", "--output", path, "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Wrote "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Password & Entropy Lab Report")
	assert.NotContains(t, string(b), secret)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAssess_BOM(t *testing.T) {
	isolate(t)
	r := runCLI(t, secret, "assess", "--format", "json", "--bom", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "\ufeff"))
}

func TestAssess_AuditAndHistory(t *testing.T) {
	isolate(t)

	r := runCLI(t, secret, "assess", "--audit", "--fail-on", "never")
	require.NoError(t, r.err)
	r = runCLI(t, strongPW, "assess", "--audit", "--policy", "BASIC_SECURITY", "--fail-on", "never")
	require.NoError(t, r.err)

	logPath := filepath.Join(config.DataDir(), audit.FileName)
	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), secret)
	assert.NotContains(t, string(raw), strongPW)

	r = runCLI(t, "", "history", "--json")
	require.NoError(t, r.err)
	var records []audit.Record
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "BASIC_SECURITY", records[0].Policy, "newest first")
	assert.Equal(t, "assess", records[0].Source)
	assert.Equal(t, policy.Builtin().Fingerprint(), records[0].Catalog)

	r = runCLI(t, "", "history", "--limit", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "BASIC_SECURITY")
	assert.NotContains(t, r.stdout, policy.DefaultPolicyName)

	r = runCLI(t, "", "history", "--delete", "0")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Deleted record 0")

	r = runCLI(t, "", "history", "--json")
	require.NoError(t, r.err)
	records = nil
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, policy.DefaultPolicyName, records[0].Policy)
}

func TestHistory_Empty(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "history")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No audit records.")

	r = runCLI(t, "", "history", "--json")
	require.NoError(t, r.err)
	assert.JSONEq(t, "[]", r.stdout)
}

func TestConfigPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pwlab.yml"),
		[]byte("policy: BASIC_SECURITY\nformat: json\nfail_on: never\n"), 0644))

	r := runCLI(t, secret, "assess")
	require.NoError(t, r.err)
	assert.Equal(t, "BASIC_SECURITY", decodeAssessment(t, r.stdout).PolicyName)
	assert.Equal(t, 0, r.code)

	r = runCLI(t, secret, "assess", "--policy", "OWASP_WEB_SECURITY")
	require.NoError(t, r.err)
	assert.Equal(t, "OWASP_WEB_SECURITY", decodeAssessment(t, r.stdout).PolicyName)

	// --config replaces the local file
	other := filepath.Join(dir, "other.yml")
	require.NoError(t, os.WriteFile(other, []byte("policy: PCI_DSS_COMPLIANCE\nformat: json\nfail_on: never\n"), 0644))
	r = runCLI(t, secret, "--config", other, "assess")
	require.NoError(t, r.err)
	assert.Equal(t, "PCI_DSS_COMPLIANCE", decodeAssessment(t, r.stdout).PolicyName)
}

func TestConfigPrecedence_Global(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(config.Dir(), 0700))
	require.NoError(t, os.WriteFile(config.GlobalPath(), []byte("policy: GOOGLE_WORKSPACE\nformat: json\n"), 0644))

	r := runCLI(t, secret, "assess", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Equal(t, "GOOGLE_WORKSPACE", decodeAssessment(t, r.stdout).PolicyName)
}

func TestConfig_Invalid(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pwlab.yml"), []byte("policy: [\n"), 0644))
	r := runCLI(t, secret, "assess")
	assert.Error(t, r.err)
}

func TestPolicyFiles(t *testing.T) {
	dir := isolate(t)
	pdir := filepath.Join(dir, "policies", "team")
	require.NoError(t, os.MkdirAll(pdir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pdir, "team.yaml"), []byte(`policies:
  - name: TEAM_STANDARD
    category: business
    min_length: 6
    min_entropy: 10
`), 0644))

	glob := filepath.Join(dir, "policies", "**", "*.yaml")
	r := runCLI(t, secret, "--policy-files", glob, "assess", "--policy", "TEAM_STANDARD", "--format", "json")
	require.NoError(t, r.err)
	a := decodeAssessment(t, r.stdout)
	assert.Equal(t, "TEAM_STANDARD", a.PolicyName)

	r = runCLI(t, "", "--policy-files", glob, "policies", "--category", "business")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "TEAM_STANDARD")
	assert.NotContains(t, r.stdout, "BASIC_SECURITY")
}

func TestPolicies(t *testing.T) {
	isolate(t)

	r := runCLI(t, "", "policies")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "For yourself")
	assert.Contains(t, r.stdout, "GDPR_COMPLIANCE_EU")
	assert.Contains(t, r.stdout, "Default: "+policy.DefaultPolicyName)

	r = runCLI(t, "", "policies", "--category", "expert", "--json")
	require.NoError(t, r.err)
	var groups []policy.CategoryGroup
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, policy.CategoryExpert, groups[0].Category)
	require.Len(t, groups[0].Policies, 3)

	r = runCLI(t, "", "policies", "--category", "galactic")
	assert.Error(t, r.err)
}

func TestBatch(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "pw.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc123\r\n\n"+strongPW+"\n"), 0600))

	r := runCLI(t, "", "batch", "--file", file)
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "Assessed: 3")
	assert.NotContains(t, r.stdout, strongPW)

	r = runCLI(t, "", "batch", "--file", file, "--json", "--threads", "2")
	require.NoError(t, r.err)
	var as []types.Assessment
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &as))
	require.Len(t, as, 3)
	assert.Equal(t, 6, as[0].Length)
	assert.Equal(t, 0, as[1].Length)
	assert.Equal(t, 20, as[2].Length)

	r = runCLI(t, "", "batch", "--file", file, "--fail-on", "fail")
	require.NoError(t, r.err)
	assert.Equal(t, 1, r.code)
}

func TestBatch_FailOnFromConfig(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "pw.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc123\n"), 0600))

	r := runCLI(t, "", "batch", "--file", file)
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code, "no threshold configured")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pwlab.yml"), []byte("fail_on: warn\n"), 0644))
	r = runCLI(t, "", "batch", "--file", file)
	require.NoError(t, r.err)
	assert.Equal(t, 1, r.code, "fail_on from the local config")

	r = runCLI(t, "", "batch", "--file", file, "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.code, "flag beats config")
}

func TestBatch_Stdin(t *testing.T) {
	isolate(t)
	r := runCLI(t, "abc123\n"+strongPW+"\n", "batch", "--file", "-", "--json", "--policy", "BASIC_SECURITY")
	require.NoError(t, r.err)
	var as []types.Assessment
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &as))
	require.Len(t, as, 2)
	assert.Equal(t, "BASIC_SECURITY", as[1].PolicyName)
}

func TestBatch_Errors(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "batch")
	assert.Error(t, r.err, "--file is required")

	r = runCLI(t, "", "batch", "--file", "missing.txt")
	assert.Error(t, r.err)
}

func TestInteractive(t *testing.T) {
	isolate(t)
	var got tui.Options
	orig := runTUI
	runTUI = func(opts tui.Options) error {
		got = opts
		return nil
	}
	defer func() { runTUI = orig }()

	r := runCLI(t, "", "interactive")
	require.NoError(t, r.err)
	assert.Equal(t, "", got.Policy)
	assert.Nil(t, got.AuditLog)
	assert.Equal(t, tui.DefaultPrefsPath(), got.PrefsPath)
	require.NotNil(t, got.Engine)

	r = runCLI(t, "", "tui", "--policy", "OWASP_WEB_SECURITY", "--audit")
	require.NoError(t, r.err)
	assert.Equal(t, "OWASP_WEB_SECURITY", got.Policy)
	require.NotNil(t, got.AuditLog)
	assert.Equal(t, filepath.Join(config.DataDir(), audit.FileName), got.AuditLog.Path())
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)

	r := runCLI(t, "", "config", "init", "--policy", "OWASP_WEB_SECURITY", "--format", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Wrote .pwlab.yml")

	fc, err := config.LoadFile(filepath.Join(dir, ".pwlab.yml"))
	require.NoError(t, err)
	require.NotNil(t, fc.Policy)
	assert.Equal(t, "OWASP_WEB_SECURITY", *fc.Policy)
	require.NotNil(t, fc.Format)
	assert.Equal(t, "json", *fc.Format)

	r = runCLI(t, "", "config", "init")
	assert.Error(t, r.err, "refuses to overwrite")

	r = runCLI(t, "", "config", "init", "--force")
	require.NoError(t, r.err)

	r = runCLI(t, "", "config", "init", "--force", "--policy", "NOPE")
	assert.ErrorIs(t, r.err, policy.ErrUnknownPolicy)
}

func TestConfigPath(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "config", "path")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, config.GlobalPath())
	assert.Contains(t, r.stdout, config.DataDir())
}

func TestVersionAndCompletion(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "pwlab "+version)
	assert.Contains(t, r.stdout, policy.Builtin().Fingerprint())

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		r = runCLI(t, "", "completion", shell)
		require.NoError(t, r.err, shell)
		assert.NotEmpty(t, r.stdout, shell)
	}
	r = runCLI(t, "", "completion", "tcsh")
	assert.Error(t, r.err)
}

func TestLogLevel_Invalid(t *testing.T) {
	isolate(t)
	r := runCLI(t, secret, "--log-level", "loud", "assess")
	assert.Error(t, r.err)
}

func TestLogLevel_DebugNeverLogsPassword(t *testing.T) {
	isolate(t)
	r := runCLI(t, secret, "--log-level", "debug", "assess", "--format", "json", "--fail-on", "never")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "assessed")
	assert.NotContains(t, r.stderr, secret)
}

func stubUpdates(t *testing.T, res update.Result, err error) {
	t.Helper()
	origCheck, origApply := checkUpdate, applyUpdate
	checkUpdate = func(current string, noNetwork bool) (update.Result, error) {
		assert.Equal(t, version, current)
		assert.False(t, noNetwork)
		return res, err
	}
	t.Cleanup(func() { checkUpdate, applyUpdate = origCheck, origApply })
}

func TestVersion_Check(t *testing.T) {
	isolate(t)
	stubUpdates(t, update.Result{Current: version, Latest: "9.0.0", Newer: true, URL: "https://example.invalid/v9.0.0"}, nil)

	r := runCLI(t, "", "version")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "9.0.0", "no lookup without --check")

	r = runCLI(t, "", "version", "--check")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "pwlab "+version)
	assert.Contains(t, r.stdout, "New version available: v9.0.0")
	assert.Contains(t, r.stdout, "https://example.invalid/v9.0.0")
}

func TestUpdate_CheckOnly(t *testing.T) {
	isolate(t)
	stubUpdates(t, update.Result{Current: version, Latest: version}, nil)
	r := runCLI(t, "", "update", "--check")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "is up to date")

	stubUpdates(t, update.Result{Current: version}, nil)
	r = runCLI(t, "", "update", "--check")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Latest release: unknown")

	stubUpdates(t, update.Result{}, errors.New("rate limited"))
	r = runCLI(t, "", "update", "--check")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "rate limited")
}

func TestUpdate_Apply(t *testing.T) {
	isolate(t)
	stubUpdates(t, update.Result{}, nil)

	applyUpdate = func(current string) (string, error) { return "0.2.0", nil }
	r := runCLI(t, "", "update")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Updated pwlab "+version+" -> 0.2.0")

	applyUpdate = func(current string) (string, error) { return version, nil }
	r = runCLI(t, "", "update")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "already the latest release")

	applyUpdate = func(string) (string, error) { return "", errors.New("no asset for this platform") }
	r = runCLI(t, "", "update")
	require.Error(t, r.err)
}
