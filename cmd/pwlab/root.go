package pwlab

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagNoColor     bool
	flagLogLevel    string
	flagPolicyFiles string

	version = "0.1.0"
)

// exitFunc is swapped out in tests so the fail-on gate can be observed.
var exitFunc = os.Exit

// rootCmd is the base Cobra command for the pwlab CLI.
var rootCmd = &cobra.Command{
	Use:   "pwlab",
	Short: "Assess password strength against security policies",
	Long: "pwlab estimates password entropy, detects weak patterns and common passwords, " +
		"and checks compliance with NIST, OWASP, PCI DSS and other policies. Everything runs locally.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the pwlab CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (overrides the local .pwlab.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error|off")
	rootCmd.PersistentFlags().StringVar(&flagPolicyFiles, "policy-files", "", "glob of custom policy YAML files (supports **)")
}
