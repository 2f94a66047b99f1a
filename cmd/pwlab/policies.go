package pwlab

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
)

var (
	flagPoliciesCategory string
	flagPoliciesJSON     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the policy catalog grouped by category",
		Args:  cobra.NoArgs,
		RunE:  runPolicies,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagPoliciesCategory, "category", "", "only list one category: basic|business|expert|regional")
	cmd.Flags().BoolVar(&flagPoliciesJSON, "json", false, "emit JSON")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, c := range policy.CategoryOrder() {
			out = append(out, string(c.Category))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

func runPolicies(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, cliFlags{})
	if err != nil {
		return err
	}
	groups := a.registry.Categories()
	if flagPoliciesCategory != "" {
		c := policy.Category(strings.ToLower(strings.TrimSpace(flagPoliciesCategory)))
		g, ok := a.registry.Category(c)
		if !ok {
			return fmt.Errorf("unknown category %q (want basic, business, expert or regional)", flagPoliciesCategory)
		}
		groups = []policy.CategoryGroup{g}
	}
	if flagPoliciesJSON {
		return report.WriteJSON(cmd.OutOrStdout(), groups, report.JSONOptions{})
	}
	if err := report.PrintCatalog(cmd.OutOrStdout(), groups); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nDefault: %s  Catalog: %s\n", a.registry.DefaultName(), a.registry.Fingerprint())
	return err
}
