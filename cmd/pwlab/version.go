package pwlab

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/dictionary"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
)

var flagVersionCheck bool

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and catalog information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := policy.Builtin()
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "pwlab %s (policies: %d, catalog: %s, dictionary: %d words)\n",
				version, reg.Len(), reg.Fingerprint(), dictionary.Size()); err != nil {
				return err
			}
			if flagVersionCheck {
				return printUpdateStatus(cmd)
			}
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().BoolVar(&flagVersionCheck, "check", false, "also look up the latest GitHub release")
}
