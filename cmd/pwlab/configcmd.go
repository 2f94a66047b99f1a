package pwlab

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/config"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
)

var (
	cfgOutput  string
	cfgPolicy  string
	cfgFormat  string
	cfgFailOn  string
	cfgThreads int
	cfgForce   bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .pwlab.yml starter config",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().StringVar(&cfgPolicy, "policy", policy.DefaultPolicyName, "default policy")
	initCmd.Flags().StringVar(&cfgFormat, "format", string(report.FormatTable), "default output format")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", report.FailOnFail, "default fail-on threshold")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	_ = initCmd.RegisterFlagCompletionFunc("policy", completePolicies)
	_ = initCmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = initCmd.RegisterFlagCompletionFunc("fail-on", completeFailOn)

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config and data locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "global config: %s\ndata:          %s\n", config.GlobalPath(), config.DataDir())
			return err
		},
	}
	cfgCmd.AddCommand(pathCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, ok := policy.Builtin().Lookup(cfgPolicy); !ok {
		return fmt.Errorf("%w: %s", policy.ErrUnknownPolicy, cfgPolicy)
	}
	if _, err := report.ParseFormat(cfgFormat); err != nil {
		return err
	}
	if err := report.ValidateFailOn(cfgFailOn); err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		}
	}

	b, err := config.Starter(cfgPolicy, cfgFormat, cfgFailOn, cfgThreads, flagNoColor)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return err
}
