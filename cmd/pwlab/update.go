package pwlab

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/update"
)

// checkUpdate and applyUpdate are swapped out in tests.
var (
	checkUpdate = update.Check
	applyUpdate = update.Apply
)

var flagUpdateCheckOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace this binary with the latest GitHub release",
		Long: "Downloads the latest release of " + update.Slug + " for this platform and replaces the running executable. " +
			"Use --check to only report whether a newer release exists.",
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().BoolVar(&flagUpdateCheckOnly, "check", false, "report the latest release without installing it")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if flagUpdateCheckOnly {
		return printUpdateStatus(cmd)
	}
	installed, err := applyUpdate(version)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	out := cmd.OutOrStdout()
	if installed == normalizeVersion(version) {
		_, err = fmt.Fprintf(out, "pwlab %s is already the latest release\n", version)
		return err
	}
	_, err = fmt.Fprintf(out, "Updated pwlab %s -> %s; re-run your command\n", version, installed)
	return err
}

func printUpdateStatus(cmd *cobra.Command) error {
	res, err := checkUpdate(version, false)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	out := cmd.OutOrStdout()
	switch {
	case res.Latest == "":
		_, err = fmt.Fprintln(out, "Latest release: unknown (checks are skipped in CI)")
	case res.Newer:
		_, err = fmt.Fprintf(out, "New version available: v%s (current v%s)  run 'pwlab update' to upgrade\n", res.Latest, res.Current)
		if err == nil && res.URL != "" {
			_, err = fmt.Fprintln(out, res.URL)
		}
	default:
		_, err = fmt.Fprintf(out, "pwlab v%s is up to date\n", res.Current)
	}
	return err
}

func normalizeVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}
