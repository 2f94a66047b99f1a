package pwlab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/config"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/logging"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Terminal hooks, swapped out in tests.
var (
	isTerminal = term.IsTerminal
	readSecret = term.ReadPassword
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// cliFlags carries the per-command flags that can also come from config.
type cliFlags struct {
	policy  string
	format  string
	failOn  string
	threads int
	audit   bool
}

// settings is the effective configuration: CLI > local (or --config) > global.
type settings struct {
	Policy      string
	Format      string
	FailOn      string
	NoColor     bool
	Threads     int
	PolicyFiles string
	Audit       bool
	AuditPath   string
	LogLevel    string
}

// loadConfigs reads the global config and either --config or the local file
// in the working directory. Missing files are not an error.
func loadConfigs() (local, global config.FileConfig, err error) {
	if c, gerr := config.LoadGlobal(); gerr == nil {
		global = c
	} else if !errors.Is(gerr, config.ErrNoConfig) {
		return local, global, gerr
	}

	if flagConfig != "" {
		c, cerr := config.LoadFile(flagConfig)
		if cerr != nil {
			return local, global, fmt.Errorf("config: %w", cerr)
		}
		return c, global, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return local, global, err
	}
	if c, lerr := config.LoadLocal(wd); lerr == nil {
		local = c
	} else if !errors.Is(lerr, config.ErrNoConfig) {
		return local, global, lerr
	}
	return local, global, nil
}

func resolveSettings(cli cliFlags) (settings, error) {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return settings{}, err
	}
	s := settings{
		Policy:      pickString(cli.policy, lcfg.Policy, gcfg.Policy),
		Format:      pickString(cli.format, lcfg.Format, gcfg.Format),
		FailOn:      pickString(cli.failOn, lcfg.FailOn, gcfg.FailOn),
		NoColor:     pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		Threads:     pickInt(cli.threads, lcfg.Threads, gcfg.Threads),
		PolicyFiles: pickString(flagPolicyFiles, lcfg.PolicyFiles, gcfg.PolicyFiles),
		Audit:       pickBool(cli.audit, lcfg.Audit, gcfg.Audit),
		AuditPath:   pickString("", lcfg.AuditPath, gcfg.AuditPath),
		LogLevel:    pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel),
	}
	if s.AuditPath == "" {
		s.AuditPath = filepath.Join(config.DataDir(), audit.FileName)
	}
	if os.Getenv("NO_COLOR") != "" {
		s.NoColor = true
	}
	return s, nil
}

// buildRegistry extends the built-in catalog with custom policy files and
// applies the configured default.
func buildRegistry(s settings, logger *logging.Logger) (*policy.Registry, error) {
	reg := policy.Builtin()
	if s.PolicyFiles != "" {
		extra, err := policy.LoadFiles(s.PolicyFiles)
		if err != nil {
			return nil, err
		}
		if len(extra) == 0 {
			logger.Warn("no policy files matched", "pattern", s.PolicyFiles)
		} else {
			if reg, err = reg.With(extra...); err != nil {
				return nil, err
			}
			logger.Debug("loaded custom policies", "count", len(extra), "catalog", reg.Fingerprint())
		}
	}
	if s.Policy != "" {
		var err error
		if reg, err = reg.WithDefault(s.Policy); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// app bundles what every assessing command needs.
type app struct {
	settings
	logger   *logging.Logger
	registry *policy.Registry
	engine   *engine.Engine
}

func newApp(cmd *cobra.Command, cli cliFlags) (*app, error) {
	s, err := resolveSettings(cli)
	if err != nil {
		return nil, err
	}
	lvl, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(&logging.Config{Level: lvl, Output: cmd.ErrOrStderr(), NoColor: s.NoColor})
	reg, err := buildRegistry(s, logger)
	if err != nil {
		return nil, err
	}
	eng := engine.New(engine.Config{Registry: reg, Threads: s.Threads, Logger: logger})
	return &app{settings: s, logger: logger, registry: reg, engine: eng}, nil
}

func (a *app) auditLog() *audit.AuditLog {
	return audit.NewAuditLog(a.AuditPath)
}

// record appends as to the audit log. Failures are logged, not returned:
// the assessment itself already succeeded.
func (a *app) record(as []types.Assessment, source string) {
	records := make([]audit.Record, len(as))
	for i, x := range as {
		records[i] = audit.CreateRecord(x, a.registry.Fingerprint(), source)
	}
	if err := a.auditLog().Append(records...); err != nil {
		a.logger.Warn("audit log not written", "path", a.AuditPath, "error", err)
		return
	}
	a.logger.Debug("audit records written", "count", len(records), "path", a.AuditPath)
}

// readPassword reads without echo when stdin is a terminal, otherwise the
// first line of stdin. Passwords are never taken from arguments.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := readSecret(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

// writeOutput writes body to path with owner-only permissions, or to the
// command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, body []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0600); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", path)
	return nil
}

func completePolicies(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return policy.Builtin().Names(), cobra.ShellCompDirectiveNoFileComp
}
