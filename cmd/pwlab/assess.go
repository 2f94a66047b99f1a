package pwlab

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

var (
	flagAssessPolicy string
	flagAssessAll    bool
	flagAssessFormat string
	flagAssessOutput string
	flagAssessFailOn string
	flagAssessAudit  bool
	flagAssessBOM    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess one password against a policy",
		Long: "Reads a password with echo disabled when stdin is a terminal, otherwise the first line of stdin. " +
			"Passwords are never accepted as arguments so they stay out of shell history.",
		Args: cobra.NoArgs,
		RunE: runAssess,
		Example: `
# Prompt without echo
pwlab assess --policy PCI_DSS_COMPLIANCE

# Compare against every policy
pwlab assess --all

# Save a PDF report
pwlab assess --format pdf --output report.pdf

# Pipe from a password manager and gate CI on warnings
pass show db/prod | pwlab assess --format sarif --fail-on warn
`,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagAssessPolicy, "policy", "p", "", "policy name (default from config, then NIST_800_63B_MODERATE)")
	cmd.Flags().BoolVar(&flagAssessAll, "all", false, "assess against every policy")
	cmd.Flags().StringVarP(&flagAssessFormat, "format", "f", "", "output format: table|text|json|markdown|html|sarif|pdf")
	cmd.Flags().StringVarP(&flagAssessOutput, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flagAssessFailOn, "fail-on", "", "exit 1 when a verdict reaches: never|warn|fail (default fail)")
	cmd.Flags().BoolVar(&flagAssessAudit, "audit", false, "append the result to the audit log")
	cmd.Flags().BoolVar(&flagAssessBOM, "bom", false, "prefix JSON output with a UTF-8 byte order mark")
	cmd.MarkFlagsMutuallyExclusive("policy", "all")
	_ = cmd.RegisterFlagCompletionFunc("policy", completePolicies)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("fail-on", completeFailOn)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, cliFlags{
		policy: flagAssessPolicy,
		format: flagAssessFormat,
		failOn: flagAssessFailOn,
		audit:  flagAssessAudit,
	})
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(a.Format)
	if err != nil {
		return err
	}
	if err := report.ValidateFailOn(a.FailOn); err != nil {
		return err
	}

	tty := flagAssessOutput == "" && writerIsTerminal(cmd.OutOrStdout())
	if format == report.FormatPDF && tty {
		return fmt.Errorf("pdf output is binary; use --output or redirect stdout")
	}

	pw, err := readPassword(cmd)
	if err != nil {
		return err
	}

	var results []types.Assessment
	var names []string
	if flagAssessAll {
		byName := a.engine.AssessAll(pw)
		names = a.registry.Names()
		for _, n := range names {
			results = append(results, byName[n])
		}
	} else {
		p := a.registry.Default()
		results = append(results, a.engine.Assess(pw, &p))
	}

	var buf bytes.Buffer
	used, err := report.Export(&buf, results, format, report.ExportOptions{
		NoColor: a.NoColor || !tty,
		BOM:     flagAssessBOM,
		Version: version,
		Names:   names,
		Props:   map[string]any{"catalog": a.registry.Fingerprint()},
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if used != format {
		a.logger.Warn("export failed, wrote plain text instead", "format", string(format))
	}
	body := buf.Bytes()
	if used == report.FormatJSON && tty && !a.NoColor {
		body = []byte(report.Highlight(buf.String()))
	}
	if err := writeOutput(cmd, flagAssessOutput, body); err != nil {
		return err
	}

	if a.Audit {
		a.record(results, "assess")
	}
	if report.ShouldFail(results, a.FailOn) {
		exitFunc(1)
	}
	return nil
}

func completeFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		out[i] = string(f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeFailOn(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{report.FailOnNever, report.FailOnWarn, report.FailOnFail}, cobra.ShellCompDirectiveNoFileComp
}
