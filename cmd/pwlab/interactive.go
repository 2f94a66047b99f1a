package pwlab

import (
	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/tui"
)

var (
	flagInteractivePolicy string
	flagInteractiveAudit  bool
)

func init() {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui", "i"},
		Short:   "Assess passwords as you type in a terminal UI",
		Args:    cobra.NoArgs,
		RunE:    runInteractive,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagInteractivePolicy, "policy", "p", "", "initial policy")
	cmd.Flags().BoolVar(&flagInteractiveAudit, "audit", false, "enable ctrl+s to save results to the audit log")
	_ = cmd.RegisterFlagCompletionFunc("policy", completePolicies)
}

// runTUI is swapped out in tests.
var runTUI = tui.Run

func runInteractive(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, cliFlags{policy: flagInteractivePolicy, audit: flagInteractiveAudit})
	if err != nil {
		return err
	}
	opts := tui.Options{
		Engine:    a.engine,
		PrefsPath: tui.DefaultPrefsPath(),
		Logger:    a.logger,
	}
	// an explicit flag beats the saved preference, the config default does not
	if flagInteractivePolicy != "" {
		opts.Policy = a.registry.DefaultName()
	}
	if a.Audit {
		opts.AuditLog = a.auditLog()
	}
	return runTUI(opts)
}
